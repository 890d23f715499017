package server

// View is one top-level screen of the console.
type View struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	API   string `json:"api"`
}

var views = []View{
	{Path: "/", Title: "Dashboard", API: "/api/dashboard"},
	{Path: "/clientes", Title: "Clientes", API: "/api/clientes"},
	{Path: "/ordens", Title: "Ordens de Serviço", API: "/api/ordens"},
	{Path: "/tecnicos", Title: "Técnicos", API: "/api/tecnicos"},
	{Path: "/servicos", Title: "Serviços", API: "/api/servicos"},
	{Path: "/relatorios", Title: "Relatórios", API: "/api/relatorios/faturamento"},
}

// Views returns a copy of the navigation entries.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

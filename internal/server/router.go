package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	catalogctrl "techassist/internal/catalog/controller"
	customerctrl "techassist/internal/customer/controller"
	dashboardctrl "techassist/internal/dashboard/controller"
	"techassist/internal/infrastructure/httpresponse"
	reportctrl "techassist/internal/report/controller"
	orderctrl "techassist/internal/serviceorder/controller"
	technicianctrl "techassist/internal/technician/controller"
)

// Pinger reports whether the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Controllers struct {
	Dashboard  *dashboardctrl.DashboardController
	Customer   *customerctrl.CustomerController
	Technician *technicianctrl.TechnicianController
	Service    *catalogctrl.ServiceController
	Order      *orderctrl.OrderController
	Report     *reportctrl.ReportController
}

func NewRouter(ctrls Controllers, pinger Pinger, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(tracing)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{traceIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", healthHandler(pinger, logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/navigation", func(w http.ResponseWriter, req *http.Request) {
			httpresponse.JSON(w, logger, http.StatusOK, Views())
		})

		r.Get("/dashboard", ctrls.Dashboard.Get)

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", ctrls.Customer.List)
			r.Post("/", ctrls.Customer.Create)
			r.Get("/{id}", ctrls.Customer.Get)
			r.Put("/{id}", ctrls.Customer.Update)
			r.Delete("/{id}", ctrls.Customer.Delete)
		})

		r.Route("/tecnicos", func(r chi.Router) {
			r.Get("/", ctrls.Technician.List)
			r.Post("/", ctrls.Technician.Create)
			r.Get("/{id}", ctrls.Technician.Get)
			r.Put("/{id}", ctrls.Technician.Update)
			r.Delete("/{id}", ctrls.Technician.Delete)
		})

		r.Route("/servicos", func(r chi.Router) {
			r.Get("/", ctrls.Service.List)
			r.Post("/", ctrls.Service.Create)
			r.Get("/{id}", ctrls.Service.Get)
			r.Put("/{id}", ctrls.Service.Update)
			r.Delete("/{id}", ctrls.Service.Delete)
		})

		r.Route("/ordens", func(r chi.Router) {
			r.Get("/", ctrls.Order.List)
			r.Post("/", ctrls.Order.Create)
			r.Get("/{id}", ctrls.Order.Get)
			r.Delete("/{id}", ctrls.Order.Delete)
			r.Patch("/{id}/status", ctrls.Order.ChangeStatus)
		})

		r.Get("/relatorios/faturamento", ctrls.Report.MonthlyRevenue)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpresponse.JSON(w, logger, http.StatusNotFound, httpresponse.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "route " + req.URL.Path + " not found",
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpresponse.JSON(w, logger, http.StatusMethodNotAllowed, httpresponse.ErrorResponse{
			Error:   "METHOD_NOT_ALLOWED",
			Message: req.Method + " is not allowed on " + req.URL.Path,
		})
	})

	return r
}

func healthHandler(pinger Pinger, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			logger.Warn("health check failed", zap.Error(err))
			httpresponse.JSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httpresponse.JSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}

package controller

import "time"

type TechnicianRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type TechnicianResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	CreatedAt time.Time `json:"createdAt"`
}

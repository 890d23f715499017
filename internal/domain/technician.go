package domain

import "time"

type Technician struct {
	ID        int64
	Name      string
	Specialty string
	CreatedAt time.Time
}

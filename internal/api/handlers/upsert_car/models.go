package upsert_car

import "github.com/m04kA/SMC-CarRentalService/internal/domain"

// UpsertCarRequest HTTP request model
type UpsertCarRequest struct {
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year,omitempty"`
	PricePerDay float64 `json:"pricePerDay"`
	Available   *bool   `json:"available,omitempty"` // По умолчанию true
	Location    string  `json:"location,omitempty"`
}

// ToDomain конвертирует запрос в автомобиль каталога
func (r *UpsertCarRequest) ToDomain(id string) *domain.Car {
	available := true
	if r.Available != nil {
		available = *r.Available
	}

	return &domain.Car{
		ID:          id,
		Make:        r.Make,
		Model:       r.Model,
		Year:        r.Year,
		PricePerDay: r.PricePerDay,
		Available:   available,
		Location:    r.Location,
	}
}

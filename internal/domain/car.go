package domain

import "time"

// Car vehicle from the catalog
type Car struct {
	ID          string    `json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year,omitempty"`
	PricePerDay float64   `json:"pricePerDay"`
	Available   bool      `json:"available"`
	Location    string    `json:"location,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

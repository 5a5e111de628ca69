package entity

import "time"

// Product is immutable from the review core's point of view; it is
// created by seeding/catalog management and only ever read here.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

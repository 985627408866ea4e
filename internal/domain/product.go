package domain

import "time"

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	RichDescription string    `json:"richDescription"`
	Image           string    `json:"image"`
	Images          []string  `json:"images"`
	Brand           string    `json:"brand"`
	Price           float64   `json:"price"`
	Category        *Category `json:"category"`
	CountInStock    int       `json:"countInStock"`
	Rating          float64   `json:"rating"`
	NumReviews      int       `json:"numReviews"`
	IsFeatured      bool      `json:"isFeatured"`
	DateCreated     time.Time `json:"dateCreated"`
}

// ProductFilter narrows a product listing. Zero value lists everything.
type ProductFilter struct {
	CategoryIDs []string
	Featured    bool
	Limit       int
}

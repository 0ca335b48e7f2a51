package models

// Product as served by the backend catalog.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CategoryID  int64   `json:"categoryId,omitempty"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductQuery carries catalog list filters passed through to the backend.
type ProductQuery struct {
	CategoryID int64
	Search     string
	Page       int
	Size       int
}

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Description string  `json:"description"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

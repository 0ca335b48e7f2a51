package models

// Customer identity as resolved by the backend. Checkout looks a customer up
// by email before creating one, so repeat orders reuse the same record.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// CustomerInput is the create/update payload.
type CustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"required"`
}

// CustomerQuery carries admin list filters.
type CustomerQuery struct {
	Search string
	Page   int
	Size   int
}

package models

import "time"

// Order statuses used by the admin console. The backend owns the full set;
// these are the ones the UI offers.
const (
	OrderStatusNew       = "NEW"
	OrderStatusInWork    = "IN_WORK"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type OrderItem struct {
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice,omitempty"`
}

// Order as returned by the backend.
type Order struct {
	ID              int64       `json:"id"`
	CustomerID      int64       `json:"customerId,omitempty"`
	Status          string      `json:"status,omitempty"`
	TotalPrice      float64     `json:"totalPrice,omitempty"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	CreatedAt       time.Time   `json:"createdAt,omitempty"`
	OrderItems      []OrderItem `json:"orderItems,omitempty"`
}

// OrderDraftItem references a product by ID only. Prices are never sent by
// the client, so the backend total cannot be tampered with.
type OrderDraftItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest is the order submission payload.
type CreateOrderRequest struct {
	CustomerID       int64            `json:"customerId"`
	Items            []OrderDraftItem `json:"items"`
	DeliveryMethodID int64            `json:"deliveryMethodId"`
	DeliveryAddress  string           `json:"deliveryAddress"`
	PaymentMethodID  int64            `json:"paymentMethodId"`
}

// OrderStatusUpdate is the only shape accepted for order updates: products
// and customer are immutable once an order exists.
type OrderStatusUpdate struct {
	Status string `json:"status" binding:"required"`
}

// OrderQuery carries order list filters.
type OrderQuery struct {
	CustomerID int64
	Status     string
	Page       int
	Size       int
}

// OrderConfirmation is the server-returned order enriched with the
// customer, delivery and payment details known locally at submission time,
// for the confirmation view.
type OrderConfirmation struct {
	Order       Order           `json:"order"`
	Customer    Customer        `json:"customer"`
	Delivery    DeliveryDetails `json:"delivery"`
	Payment     PaymentDetails  `json:"payment"`
	Items       []OrderItem     `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
}

type DeliveryDetails struct {
	Method        DeliveryMethod `json:"method"`
	Address       string         `json:"address"`
	Cost          float64        `json:"cost"`
	EstimatedDays int            `json:"estimatedDays"`
}

type PaymentDetails struct {
	Method PaymentMethod `json:"method"`
}

package models

// DeliveryMethodPickup marks a method where the customer collects the order
// themselves; no delivery address is required for it.
const DeliveryMethodPickup = "self_pickup"

type DeliveryMethod struct {
	ID               int64   `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	BaseCost         float64 `json:"baseCost"`
	EstimatedDaysMin int     `json:"estimatedDaysMin"`
	EstimatedDaysMax int     `json:"estimatedDaysMax"`
	IsActive         bool    `json:"isActive"`
}

// IsPickup reports whether the method requires no delivery address.
func (m DeliveryMethod) IsPickup() bool {
	return m.Code == DeliveryMethodPickup
}

type PaymentMethod struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconURL     string `json:"iconUrl,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// DeliveryQuote is a cost/time estimate for a method+address pair.
type DeliveryQuote struct {
	Cost                  float64 `json:"cost"`
	EstimatedDays         int     `json:"estimatedDays"`
	EstimatedDeliveryDate string  `json:"estimatedDeliveryDate,omitempty"`
}

// DeliveryCalculationRequest is the POST /delivery/calculate payload used by
// the admin order form.
type DeliveryCalculationRequest struct {
	DeliveryMethodID int64            `json:"deliveryMethodId"`
	Address          string           `json:"address"`
	Weight           float64          `json:"weight"`
	Items            []OrderDraftItem `json:"items,omitempty"`
}

// PaymentRequest is the POST /payments/process payload.
type PaymentRequest struct {
	OrderID         int64   `json:"orderId"`
	PaymentMethodID int64   `json:"paymentMethodId"`
	Amount          float64 `json:"amount"`
}

// PaymentResult is the backend's processing outcome.
type PaymentResult struct {
	OrderID       int64  `json:"orderId"`
	Status        string `json:"status"`
	TransactionID string `json:"transactionId,omitempty"`
}

package clients

import (
	"context"
	"net/http"

	"github.com/vladpolisuk/sport-shop-client/models"
)

// FetchPaymentMethods lists the payment options the backend offers.
func (b *BackendClient) FetchPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var payload struct {
		Data []models.PaymentMethod `json:"data"`
	}
	if err := b.do(ctx, http.MethodGet, "/payments/methods", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// ProcessPayment asks the backend to charge an order.
func (b *BackendClient) ProcessPayment(ctx context.Context, req models.PaymentRequest) (models.PaymentResult, error) {
	var result models.PaymentResult
	err := b.do(ctx, http.MethodPost, "/payments/process", nil, req, &result)
	return result, err
}

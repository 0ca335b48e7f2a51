package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vladpolisuk/sport-shop-client/models"
)

// FetchDeliveryMethods lists the delivery options the backend offers.
func (b *BackendClient) FetchDeliveryMethods(ctx context.Context) ([]models.DeliveryMethod, error) {
	var payload struct {
		Data []models.DeliveryMethod `json:"data"`
	}
	if err := b.do(ctx, http.MethodGet, "/delivery/methods", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// DeliveryCost estimates the cost of delivering weight kilograms over
// distance kilometers with the given method.
func (b *BackendClient) DeliveryCost(ctx context.Context, methodID int64, distance, weight float64) (float64, error) {
	query := url.Values{}
	query.Set("method", strconv.FormatInt(methodID, 10))
	query.Set("distance", strconv.FormatFloat(distance, 'f', -1, 64))
	query.Set("weight", strconv.FormatFloat(weight, 'f', -1, 64))

	var cost float64
	if err := b.do(ctx, http.MethodGet, "/delivery/cost", query, nil, &cost); err != nil {
		return 0, err
	}
	return cost, nil
}

// DeliveryTime estimates the delivery time in days.
func (b *BackendClient) DeliveryTime(ctx context.Context, methodID int64, distance float64) (int, error) {
	query := url.Values{}
	query.Set("method", strconv.FormatInt(methodID, 10))
	query.Set("distance", strconv.FormatFloat(distance, 'f', -1, 64))

	var days int
	if err := b.do(ctx, http.MethodGet, "/delivery/time", query, nil, &days); err != nil {
		return 0, err
	}
	return days, nil
}

// AvailableDeliveryMethods lists methods able to serve the address and
// weight.
func (b *BackendClient) AvailableDeliveryMethods(ctx context.Context, address string, weight float64) ([]models.DeliveryMethod, error) {
	query := url.Values{}
	query.Set("address", address)
	query.Set("weight", strconv.FormatFloat(weight, 'f', -1, 64))

	var payload struct {
		Data []models.DeliveryMethod `json:"data"`
	}
	if err := b.do(ctx, http.MethodGet, "/delivery/available", query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// CalculateDelivery runs the backend's full cost/date calculation for an
// item set, used by the admin order form.
func (b *BackendClient) CalculateDelivery(ctx context.Context, req models.DeliveryCalculationRequest) (models.DeliveryQuote, error) {
	var payload struct {
		Data models.DeliveryQuote `json:"data"`
	}
	if err := b.do(ctx, http.MethodPost, "/delivery/calculate", nil, req, &payload); err != nil {
		return models.DeliveryQuote{}, err
	}
	return payload.Data, nil
}

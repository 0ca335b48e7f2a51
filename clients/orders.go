package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vladpolisuk/sport-shop-client/models"
)

func (b *BackendClient) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error) {
	var order models.Order
	err := b.do(ctx, http.MethodPost, "/orders", nil, req, &order)
	return order, err
}

func (b *BackendClient) FetchOrders(ctx context.Context, q models.OrderQuery) ([]models.Order, error) {
	query := listQuery(q.Page, q.Size)
	if q.CustomerID > 0 {
		query.Set("customerId", fmt.Sprint(q.CustomerID))
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}

	var orders []models.Order
	if err := b.do(ctx, http.MethodGet, "/orders", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (b *BackendClient) FetchOrder(ctx context.Context, id int64) (models.Order, error) {
	var order models.Order
	err := b.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &order)
	return order, err
}

// FetchMyOrders lists the orders belonging to the authenticated user.
func (b *BackendClient) FetchMyOrders(ctx context.Context, page, size int) ([]models.Order, error) {
	query := listQuery(page, size)
	query.Set("currentUser", "true")

	var orders []models.Order
	if err := b.do(ctx, http.MethodGet, "/orders/my", query, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus changes an order's status. No other order field is
// updatable through the API.
func (b *BackendClient) UpdateOrderStatus(ctx context.Context, id int64, update models.OrderStatusUpdate) (models.Order, error) {
	var order models.Order
	err := b.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), nil, update, &order)
	return order, err
}

func (b *BackendClient) DeleteOrder(ctx context.Context, id int64) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil, nil)
}

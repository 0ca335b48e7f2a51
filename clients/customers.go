package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vladpolisuk/sport-shop-client/models"
)

func (b *BackendClient) FetchCustomers(ctx context.Context, q models.CustomerQuery) ([]models.Customer, error) {
	query := listQuery(q.Page, q.Size)
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var customers []models.Customer
	if err := b.do(ctx, http.MethodGet, "/customers", query, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (b *BackendClient) FetchCustomer(ctx context.Context, id int64) (models.Customer, error) {
	var customer models.Customer
	err := b.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, nil, &customer)
	return customer, err
}

// CheckCustomerByEmail looks a customer up by email. A 404 means no record
// exists yet; callers use IsNotFound to branch into creation.
func (b *BackendClient) CheckCustomerByEmail(ctx context.Context, email string) (models.Customer, error) {
	query := url.Values{}
	query.Set("email", email)

	var payload struct {
		Data models.Customer `json:"data"`
	}
	if err := b.do(ctx, http.MethodGet, "/customers/check", query, nil, &payload); err != nil {
		return models.Customer{}, err
	}
	return payload.Data, nil
}

func (b *BackendClient) CreateCustomer(ctx context.Context, input models.CustomerInput) (models.Customer, error) {
	var customer models.Customer
	err := b.do(ctx, http.MethodPost, "/customers", nil, input, &customer)
	return customer, err
}

func (b *BackendClient) UpdateCustomer(ctx context.Context, id int64, input models.CustomerInput) (models.Customer, error) {
	var customer models.Customer
	err := b.do(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), nil, input, &customer)
	return customer, err
}

func (b *BackendClient) DeleteCustomer(ctx context.Context, id int64) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/customers/%d", id), nil, nil, nil)
}

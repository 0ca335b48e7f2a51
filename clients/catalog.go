package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vladpolisuk/sport-shop-client/models"
)

// FetchProducts lists catalog products with optional category and search
// filters.
func (b *BackendClient) FetchProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	query := listQuery(q.Page, q.Size)
	if q.CategoryID > 0 {
		query.Set("categoryId", fmt.Sprint(q.CategoryID))
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var products []models.Product
	if err := b.do(ctx, http.MethodGet, "/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (b *BackendClient) FetchProduct(ctx context.Context, id int64) (models.Product, error) {
	var product models.Product
	err := b.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, nil, &product)
	return product, err
}

func (b *BackendClient) CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	var product models.Product
	err := b.do(ctx, http.MethodPost, "/products", nil, input, &product)
	return product, err
}

func (b *BackendClient) UpdateProduct(ctx context.Context, id int64, input models.ProductInput) (models.Product, error) {
	var product models.Product
	err := b.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, input, &product)
	return product, err
}

func (b *BackendClient) DeleteProduct(ctx context.Context, id int64) error {
	return b.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}

func (b *BackendClient) FetchCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := b.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/models"
)

// AdminController is the management console: CRUD over products, customers
// and orders, proxied to the backend under the admin's own token. Order
// updates are restricted to the status field.
type AdminController struct {
	backend *clients.BackendClient
}

func NewAdminController(backend *clients.BackendClient) *AdminController {
	return &AdminController{backend: backend}
}

// ListProducts handles GET /admin/products
func (ad *AdminController) ListProducts(c *gin.Context) {
	q := models.ProductQuery{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Size:   queryInt(c, "size", 20),
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		q.CategoryID = id
	}

	products, err := ad.backend.FetchProducts(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct handles POST /admin/products
func (ad *AdminController) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := ad.backend.CreateProduct(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/:id
func (ad *AdminController) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := ad.backend.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/:id
func (ad *AdminController) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ad.backend.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCustomers handles GET /admin/customers
func (ad *AdminController) ListCustomers(c *gin.Context) {
	customers, err := ad.backend.FetchCustomers(c.Request.Context(), models.CustomerQuery{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Size:   queryInt(c, "size", 20),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// GetCustomer handles GET /admin/customers/:id
func (ad *AdminController) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customer, err := ad.backend.FetchCustomer(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /admin/customers
func (ad *AdminController) CreateCustomer(c *gin.Context) {
	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	customer, err := ad.backend.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /admin/customers/:id
func (ad *AdminController) UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input models.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	customer, err := ad.backend.UpdateCustomer(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /admin/customers/:id
func (ad *AdminController) DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ad.backend.DeleteCustomer(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOrders handles GET /admin/orders
func (ad *AdminController) ListOrders(c *gin.Context) {
	q := models.OrderQuery{
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 1),
		Size:   queryInt(c, "size", 20),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		q.CustomerID = id
	}

	orders, err := ad.backend.FetchOrders(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder handles GET /admin/orders/:id
func (ad *AdminController) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := ad.backend.FetchOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder handles PUT /admin/orders/:id. Only the status can change;
// line items and the customer are immutable once the order exists.
func (ad *AdminController) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var update models.OrderStatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, err := ad.backend.UpdateOrderStatus(c.Request.Context(), id, update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /admin/orders/:id
func (ad *AdminController) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ad.backend.DeleteOrder(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CalculateDelivery handles POST /admin/delivery/calculate, the order-form
// quote.
func (ad *AdminController) CalculateDelivery(c *gin.Context) {
	var req models.DeliveryCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	quote, err := ad.backend.CalculateDelivery(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/models"
)

// OrdersController serves the customer-facing order history and payment.
type OrdersController struct {
	backend *clients.BackendClient
}

func NewOrdersController(backend *clients.BackendClient) *OrdersController {
	return &OrdersController{backend: backend}
}

type payOrderRequest struct {
	PaymentMethodID int64   `json:"paymentMethodId" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
}

// My handles GET /orders/my. The backend scopes the listing to the bearer
// of the token.
func (oc *OrdersController) My(c *gin.Context) {
	orders, err := oc.backend.FetchMyOrders(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "size", 20))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// Get handles GET /orders/:id
func (oc *OrdersController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := oc.backend.FetchOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// Pay handles POST /orders/:id/pay, a passthrough to the backend's payment
// processing.
func (oc *OrdersController) Pay(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req payOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, err := oc.backend.ProcessPayment(c.Request.Context(), models.PaymentRequest{
		OrderID:         id,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

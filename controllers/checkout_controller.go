package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/middleware"
	"github.com/vladpolisuk/sport-shop-client/services"
)

// CheckoutController drives the multi-step checkout flow.
type CheckoutController struct {
	checkout *services.CheckoutService
	backend  *clients.BackendClient
}

func NewCheckoutController(checkout *services.CheckoutService, backend *clients.BackendClient) *CheckoutController {
	return &CheckoutController{checkout: checkout, backend: backend}
}

type selectDeliveryRequest struct {
	DeliveryMethodID int64  `json:"deliveryMethodId" binding:"required"`
	Address          string `json:"address"`
}

type selectPaymentRequest struct {
	PaymentMethodID int64 `json:"paymentMethodId" binding:"required"`
}

// Begin handles POST /checkout/begin. An empty cart answers with a redirect
// payload instead of a flow.
func (cc *CheckoutController) Begin(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	view, err := cc.checkout.Begin(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": services.ErrEmptyCart.Message, "redirect": "/cart"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Options handles GET /checkout/options. Partial failures are reported per
// listing so the client can retry one side only.
func (cc *CheckoutController) Options(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	opts, err := cc.checkout.LoadOptions(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{
		"deliveryMethods": opts.DeliveryMethods,
		"paymentMethods":  opts.PaymentMethods,
	}
	if opts.DeliveryErr != nil {
		resp["deliveryError"] = opts.DeliveryErr.Error()
	}
	if opts.PaymentErr != nil {
		resp["paymentError"] = opts.PaymentErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// SelectDelivery handles POST /checkout/delivery
func (cc *CheckoutController) SelectDelivery(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req selectDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := cc.checkout.SelectDelivery(c.Request.Context(), userID, req.DeliveryMethodID, req.Address)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SelectPayment handles POST /checkout/payment
func (cc *CheckoutController) SelectPayment(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req selectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := cc.checkout.SelectPayment(c.Request.Context(), userID, req.PaymentMethodID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Submit handles POST /checkout/submit
func (cc *CheckoutController) Submit(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var contact services.CheckoutContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	confirmation, err := cc.checkout.Submit(c.Request.Context(), userID, contact)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, confirmation)
}

// View handles GET /checkout
func (cc *CheckoutController) View(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	view, err := cc.checkout.View(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AvailableDelivery handles GET /checkout/delivery/available, the
// address-scoped method listing.
func (cc *CheckoutController) AvailableDelivery(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address is required"})
		return
	}
	weight, err := strconv.ParseFloat(c.DefaultQuery("weight", "0"), 64)
	if err != nil || weight < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid weight"})
		return
	}

	methods, err := cc.backend.AvailableDeliveryMethods(c.Request.Context(), address, weight)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deliveryMethods": methods})
}

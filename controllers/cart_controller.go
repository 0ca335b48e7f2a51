package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/middleware"
	"github.com/vladpolisuk/sport-shop-client/services"
)

// CartController handles the per-user shopping cart.
type CartController struct {
	carts   *services.CartService
	backend *clients.BackendClient
}

func NewCartController(carts *services.CartService, backend *clients.BackendClient) *CartController {
	return &CartController{carts: carts, backend: backend}
}

type addItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /cart
func (cc *CartController) Get(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, cc.carts.Get(c.Request.Context(), userID))
}

// Add handles POST /cart/add. The product is fetched from the backend so
// the stored line always carries the catalog name and price, never
// client-supplied ones.
func (cc *CartController) Add(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	product, err := cc.backend.FetchProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}

	cart := cc.carts.Add(c.Request.Context(), userID, product, req.Quantity)
	c.JSON(http.StatusOK, cart)
}

// SetQuantity handles PUT /cart/items/:product_id. Zero or negative removes
// the line.
func (cc *CartController) SetQuantity(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart := cc.carts.SetQuantity(c.Request.Context(), userID, productID, req.Quantity)
	c.JSON(http.StatusOK, cart)
}

// Remove handles DELETE /cart/remove/:product_id
func (cc *CartController) Remove(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}

	cart := cc.carts.Remove(c.Request.Context(), userID, productID)
	c.JSON(http.StatusOK, cart)
}

// Clear handles DELETE /cart/clear
func (cc *CartController) Clear(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	cart := cc.carts.Clear(c.Request.Context(), userID)
	c.JSON(http.StatusOK, cart)
}

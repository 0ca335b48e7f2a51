package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/models"
)

// CatalogController serves the public product grid and detail views.
type CatalogController struct {
	backend *clients.BackendClient
}

func NewCatalogController(backend *clients.BackendClient) *CatalogController {
	return &CatalogController{backend: backend}
}

// List handles GET /catalog
func (cc *CatalogController) List(c *gin.Context) {
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

	products, err := cc.backend.FetchProducts(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// Get handles GET /catalog/:id
func (cc *CatalogController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := cc.backend.FetchProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Categories handles GET /catalog/categories
func (cc *CatalogController) Categories(c *gin.Context) {
	categories, err := cc.backend.FetchCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

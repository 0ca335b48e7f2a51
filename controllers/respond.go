// Package controllers translates HTTP requests into service and backend
// calls. Error mapping is uniform: service errors carry their own status,
// backend errors keep the status the backend answered with, and transport
// failures surface as 502.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/clients"
	"github.com/vladpolisuk/sport-shop-client/services"
)

func writeError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	var apiErr *clients.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
}

// pathID parses a numeric path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

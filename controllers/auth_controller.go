package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladpolisuk/sport-shop-client/models"
	"github.com/vladpolisuk/sport-shop-client/services"
)

// AuthController handles login, registration and session inspection.
type AuthController struct {
	session *services.SessionService
}

func NewAuthController(session *services.SessionService) *AuthController {
	return &AuthController{session: session}
}

// Login handles POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, err := ac.session.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register handles POST /auth/register. The new account is not logged in;
// the client follows up with a login call.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	resp, err := ac.session.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Check handles GET /auth/check
func (ac *AuthController) Check(c *gin.Context) {
	status := ac.session.CheckAuth(c.Request.Context())
	c.JSON(http.StatusOK, status)
}

// Logout handles POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	ac.session.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

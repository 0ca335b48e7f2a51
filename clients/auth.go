package clients

import (
	"context"
	"net/http"

	"github.com/vladpolisuk/sport-shop-client/models"
)

// Login exchanges credentials for a token and profile.
func (b *BackendClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := b.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp)
	return resp, err
}

// Register creates an account and returns a token and profile.
func (b *BackendClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := b.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp)
	return resp, err
}

// AuthCheck validates the current token against the backend and returns the
// refreshed profile.
func (b *BackendClient) AuthCheck(ctx context.Context) (models.User, error) {
	var payload struct {
		User models.User `json:"user"`
	}
	if err := b.do(ctx, http.MethodGet, "/auth/check", nil, nil, &payload); err != nil {
		return models.User{}, err
	}
	return payload.User, nil
}

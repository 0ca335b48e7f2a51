package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/vladpolisuk/sport-shop-client/models"
	"github.com/vladpolisuk/sport-shop-client/storage"
)

// Storage keys for the session pieces. Token and profile are kept under
// separate keys so either can be cleared or refreshed independently.
const (
	storageKeyToken = "authToken"
	storageKeyUser  = "userData"
)

// AuthBackend is the slice of the backend API the session manager needs.
type AuthBackend interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	AuthCheck(ctx context.Context) (models.User, error)
}

// SessionService owns the persisted auth token and user profile. It
// implements clients.TokenSource so every backend request is decorated with
// the current token, and its Clear method is wired as the client's 401 hook
// so an unauthorized response anywhere destroys the session.
type SessionService struct {
	store   storage.Store
	backend AuthBackend
	logger  *zap.Logger
}

func NewSessionService(store storage.Store, logger *zap.Logger) *SessionService {
	return &SessionService{store: store, logger: logger}
}

// SetBackend wires the backend client. Set after construction because the
// client itself needs the session as its token source.
func (s *SessionService) SetBackend(backend AuthBackend) {
	s.backend = backend
}

// Token returns the stored bearer token, or "" when unauthenticated.
func (s *SessionService) Token() string {
	data, ok, err := s.store.Get(context.Background(), storageKeyToken)
	if err != nil || !ok {
		return ""
	}
	return string(data)
}

// CurrentUser returns the stored profile, or nil when none is stored or the
// snapshot is unreadable.
func (s *SessionService) CurrentUser() *models.User {
	data, ok, err := s.store.Get(context.Background(), storageKeyUser)
	if err != nil || !ok {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// HasRole reports whether the stored profile carries the role.
func (s *SessionService) HasRole(role string) bool {
	user := s.CurrentUser()
	return user != nil && user.HasRole(role)
}

// IsAdmin reports whether the stored profile carries the ADMIN role.
func (s *SessionService) IsAdmin() bool {
	return s.HasRole(models.RoleAdmin)
}

// Login exchanges credentials for a session and persists it.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	resp, err := s.backend.Login(ctx, req)
	if err != nil {
		return models.AuthResponse{}, err
	}
	s.saveSession(ctx, resp.Token, resp.User)
	s.logger.Info("user logged in", zap.String("username", resp.User.Username))
	return resp, nil
}

// Register creates an account. The session is not persisted: the user logs
// in afterwards.
func (s *SessionService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return s.backend.Register(ctx, req)
}

// CheckAuth validates the stored token. A missing, locally expired or
// backend-rejected token clears the session and reports unauthenticated; on
// success the stored profile is refreshed.
func (s *SessionService) CheckAuth(ctx context.Context) models.AuthStatus {
	token := s.Token()
	if token == "" {
		return models.AuthStatus{Authenticated: false}
	}
	if tokenExpired(token) {
		s.Clear()
		return models.AuthStatus{Authenticated: false}
	}

	user, err := s.backend.AuthCheck(ctx)
	if err != nil {
		s.logger.Warn("auth check failed", zap.Error(err))
		s.Clear()
		return models.AuthStatus{Authenticated: false}
	}

	s.saveUser(ctx, user)
	return models.AuthStatus{Authenticated: true, User: &user}
}

// Logout destroys the session.
func (s *SessionService) Logout() {
	s.Clear()
}

// Clear removes the stored token and profile. Safe to call repeatedly.
func (s *SessionService) Clear() {
	ctx := context.Background()
	if err := s.store.Delete(ctx, storageKeyToken); err != nil {
		s.logger.Warn("failed to clear stored token", zap.Error(err))
	}
	if err := s.store.Delete(ctx, storageKeyUser); err != nil {
		s.logger.Warn("failed to clear stored profile", zap.Error(err))
	}
}

func (s *SessionService) saveSession(ctx context.Context, token string, user models.User) {
	if err := s.store.Set(ctx, storageKeyToken, []byte(token)); err != nil {
		s.logger.Warn("failed to persist token", zap.Error(err))
	}
	s.saveUser(ctx, user)
}

func (s *SessionService) saveUser(ctx context.Context, user models.User) {
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.store.Set(ctx, storageKeyUser, data); err != nil {
		s.logger.Warn("failed to persist profile", zap.Error(err))
	}
}

// tokenExpired peeks at the token's exp claim without verifying the
// signature (verification is the backend's job). Opaque tokens are passed
// through for the backend to judge.
func tokenExpired(tokenStr string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}

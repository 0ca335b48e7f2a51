package models

// User roles known to the storefront.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the profile stored alongside the auth token.
type User struct {
	Username string   `json:"username"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// AuthResponse is returned by the backend on login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthStatus is the result of a session validation.
type AuthStatus struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

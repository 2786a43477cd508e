// Package dto defines request and response schemas for the HTTP API.
// Bodies are validated at the boundary before reaching business logic.
package dto

// RegisterRequest is the body for POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly signed bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

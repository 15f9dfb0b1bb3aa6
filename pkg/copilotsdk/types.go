package copilotsdk

import (
	"github.com/aussiebroadwan/copilot/pkg/jwtx"
)

// ============================================================================
// Auth Types
// ============================================================================

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/signup. Name may be empty.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// User is the public view of an account. It never carries the password.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse is returned by both auth endpoints.
//
// On success User is set; a login additionally carries the access token.
// On failure Success is false and Message explains why.
type AuthResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`

	// AccessToken is the signed JWT to present as "Authorization: Bearer".
	AccessToken string `json:"access_token,omitempty"`

	// TokenType is always "Bearer".
	TokenType string `json:"token_type,omitempty"`

	// ExpiresIn is the lifetime of the access token in seconds.
	ExpiresIn int `json:"expires_in,omitempty"`
}

// ============================================================================
// Record Types
// ============================================================================

// Client is a bookkeeping client as served by the record endpoints.
type Client struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	GSTIN    string    `json:"gstin"`
	Services []Service `json:"services"`
}

// Service is a unit of work tracked for a client.
type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// CreateClientRequest is the body of POST /clients.
type CreateClientRequest struct {
	Name  string `json:"name"`
	GSTIN string `json:"gstin"`
}

// AddServiceRequest is the body of POST /clients/{clientId}/services.
type AddServiceRequest struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-auth failure.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// System Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the readiness of each dependency.
type HealthChecks struct {
	Store  string `json:"store"`
	Signer string `json:"signer"`
}

// JWKSResponse is the JSON Web Key Set served at /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS

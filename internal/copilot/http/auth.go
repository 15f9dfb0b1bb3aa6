package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/copilot/internal/copilot/domain"
	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
)

// AuthHandler serves the signup and login endpoints.
type AuthHandler struct {
	AccountService *service.AccountService
	TokenService   *service.TokenService
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Log in
//	@Description	Checks the email and password against the registered accounts and returns the public account view with a short-lived access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		copilotsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	copilotsdk.AuthResponse		"success, user, access_token"
//	@Failure		400		{object}	copilotsdk.AuthResponse		"invalid JSON"
//	@Failure		401		{object}	copilotsdk.AuthResponse		"success=false, message"
//	@Failure		429		{object}	copilotsdk.ErrorResponse	"message"
//	@Failure		500		{object}	copilotsdk.ErrorResponse	"message"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req copilotsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeAuthFailure(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	account, err := h.AccountService.Login(ctx, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		writeAuthFailure(w, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		log.Error("login failed", "error", err)
		writeInternalError(w)
		return
	}

	token, err := h.TokenService.Issue(ctx, account)
	if err != nil {
		writeInternalError(w)
		return
	}

	log.Info("account logged in", "account_id", account.ID)

	httpx.WriteJSON(w, http.StatusOK, copilotsdk.AuthResponse{
		Success:     true,
		User:        toUser(account),
		AccessToken: token.Token,
		TokenType:   token.Type,
		ExpiresIn:   int(token.ExpiresIn.Seconds()),
	})
}

// HandleSignup handles POST /auth/signup
//
//	@Summary		Sign up
//	@Description	Registers a new account. Emails are unique and compared case-sensitively.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		copilotsdk.SignupRequest	true	"New account"
//	@Success		200		{object}	copilotsdk.AuthResponse		"success, user"
//	@Failure		400		{object}	copilotsdk.AuthResponse		"success=false, message"
//	@Failure		429		{object}	copilotsdk.ErrorResponse	"message"
//	@Failure		500		{object}	copilotsdk.ErrorResponse	"message"
//	@Router			/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req copilotsdk.SignupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeAuthFailure(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	account, err := h.AccountService.Signup(ctx, req.Email, req.Password, req.Name)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrDuplicateAccount):
		writeAuthFailure(w, http.StatusBadRequest, "User already exists")
		return
	default:
		log.Error("signup failed", "error", err)
		writeInternalError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, copilotsdk.AuthResponse{
		Success: true,
		User:    toUser(account),
	})
}

func toUser(a domain.PublicAccount) *copilotsdk.User {
	return &copilotsdk.User{ID: a.ID, Email: a.Email, Name: a.Name}
}

func writeAuthFailure(w http.ResponseWriter, code int, message string) {
	httpx.WriteJSON(w, code, copilotsdk.AuthResponse{Success: false, Message: message})
}

func writeInternalError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusInternalServerError, copilotsdk.ErrorResponse{Message: "Internal server error"})
}

package copilotsdk

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to a copilot server on behalf of one Session.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Session    *Session
}

// NewSDKClient creates a client for baseURL. A nil session gets an in-memory
// one with default settings.
func NewSDKClient(baseURL string, session *Session) *SDKClient {
	if session == nil {
		session = NewSession(SessionOptions{})
	}
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Session: session,
	}
}

// Login checks credentials and, on success, begins the session with the
// issued token. Failures leave the session untouched.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}
	if !auth.Success || auth.User == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: auth.Message}
	}
	if auth.AccessToken == "" {
		return nil, errors.New("copilotsdk: login response carried no access token")
	}

	if err := c.Session.Begin(auth.AccessToken, auth.User); err != nil {
		return nil, err
	}
	return auth.User, nil
}

// Signup registers an account. It does not log in.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/signup", req)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}
	if !auth.Success || auth.User == nil {
		return nil, &APIError{StatusCode: http.StatusOK, Message: auth.Message}
	}
	return auth.User, nil
}

// Logout ends the session locally. Tokens are stateless, so there is
// nothing to revoke on the server.
func (c *SDKClient) Logout() {
	c.Session.Logout()
}

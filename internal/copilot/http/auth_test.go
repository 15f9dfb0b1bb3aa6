package http_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/copilot/internal/copilot/domain"
	copilothttp "github.com/aussiebroadwan/copilot/internal/copilot/http"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/stretchr/testify/require"
)

func TestSignupThenLogin(t *testing.T) {
	s := newServer(t, nil, copilothttp.Options{})

	rec := s.do(t, http.MethodPost, "/auth/signup",
		copilotsdk.SignupRequest{Email: "a@x.io", Password: "p1", Name: "A"}, "")
	requireStatus(t, rec, http.StatusOK)

	signup := decode[copilotsdk.AuthResponse](t, rec)
	require.True(t, signup.Success)
	require.Equal(t, &copilotsdk.User{ID: 1_000, Email: "a@x.io", Name: "A"}, signup.User)
	require.Empty(t, signup.AccessToken)
	require.NotContains(t, rec.Body.String(), "password")

	rec = s.do(t, http.MethodPost, "/auth/login",
		copilotsdk.LoginRequest{Email: "a@x.io", Password: "p1"}, "")
	requireStatus(t, rec, http.StatusOK)

	login := decode[copilotsdk.AuthResponse](t, rec)
	require.True(t, login.Success)
	require.Equal(t, signup.User, login.User)
	require.Equal(t, "Bearer", login.TokenType)
	require.Equal(t, 3600, login.ExpiresIn)

	claims, err := s.keys.Verifier.Verify(login.AccessToken)
	require.NoError(t, err)
	id, err := claims.AccountID()
	require.NoError(t, err)
	require.Equal(t, int64(1_000), id)
}

func TestSignupDuplicate(t *testing.T) {
	s := newServer(t, nil, copilothttp.Options{})

	req := copilotsdk.SignupRequest{Email: "a@x.io", Password: "p1", Name: "A"}
	requireStatus(t, s.do(t, http.MethodPost, "/auth/signup", req, ""), http.StatusOK)

	req.Password = "other"
	rec := s.do(t, http.MethodPost, "/auth/signup", req, "")
	requireStatus(t, rec, http.StatusBadRequest)
	require.JSONEq(t, `{"success":false,"message":"User already exists"}`, rec.Body.String())

	users, err := store.Load[domain.Account](t.Context(), s.store, store.Users)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "p1", users[0].Password)
}

func TestSignupWithBlankEmail(t *testing.T) {
	s := newServer(t, nil, copilothttp.Options{})

	rec := s.do(t, http.MethodPost, "/auth/signup", copilotsdk.SignupRequest{Password: "p1"}, "")
	requireStatus(t, rec, http.StatusOK)
	require.True(t, decode[copilotsdk.AuthResponse](t, rec).Success)

	rec = s.do(t, http.MethodPost, "/auth/signup", copilotsdk.SignupRequest{Password: "p2"}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	require.JSONEq(t, `{"success":false,"message":"User already exists"}`, rec.Body.String())

	users, err := store.Load[domain.Account](t.Context(), s.store, store.Users)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestLoginFailures(t *testing.T) {
	s := newServer(t, nil, copilothttp.Options{})
	requireStatus(t, s.do(t, http.MethodPost, "/auth/signup",
		copilotsdk.SignupRequest{Email: "a@x.io", Password: "p1"}, ""), http.StatusOK)

	tests := []struct {
		name string
		body any
		code int
		want string
	}{
		{
			name: "wrong password",
			body: copilotsdk.LoginRequest{Email: "a@x.io", Password: "nope"},
			code: http.StatusUnauthorized,
			want: `{"success":false,"message":"Invalid credentials"}`,
		},
		{
			name: "unknown email",
			body: copilotsdk.LoginRequest{Email: "b@x.io", Password: "p1"},
			code: http.StatusUnauthorized,
			want: `{"success":false,"message":"Invalid credentials"}`,
		},
		{
			name: "email is case sensitive",
			body: copilotsdk.LoginRequest{Email: "A@x.io", Password: "p1"},
			code: http.StatusUnauthorized,
			want: `{"success":false,"message":"Invalid credentials"}`,
		},
		{
			name: "blank password",
			body: copilotsdk.LoginRequest{Email: "a@x.io"},
			code: http.StatusUnauthorized,
			want: `{"success":false,"message":"Invalid credentials"}`,
		},
		{
			name: "blank email and password",
			body: copilotsdk.LoginRequest{},
			code: http.StatusUnauthorized,
			want: `{"success":false,"message":"Invalid credentials"}`,
		},
		{
			name: "malformed json",
			body: `{"email":`,
			code: http.StatusBadRequest,
			want: `{"success":false,"message":"Invalid JSON in request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/auth/login", tt.body, "")
			requireStatus(t, rec, tt.code)
			require.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestAuthStorageFailureIs500(t *testing.T) {
	s := newServer(t, failingStore{}, copilothttp.Options{})

	rec := s.do(t, http.MethodPost, "/auth/login", copilotsdk.LoginRequest{Email: "a@x.io", Password: "p"}, "")
	requireStatus(t, rec, http.StatusInternalServerError)
	require.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/auth/signup", copilotsdk.SignupRequest{Email: "a@x.io", Password: "p"}, "")
	requireStatus(t, rec, http.StatusInternalServerError)
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	s := newServer(t, nil, copilothttp.Options{
		Limits: copilothttp.Limits{Auth: httpxLimit(2)},
	})

	body := copilotsdk.LoginRequest{Email: "a@x.io", Password: "p"}
	requireStatus(t, s.do(t, http.MethodPost, "/auth/login", body, ""), http.StatusUnauthorized)
	requireStatus(t, s.do(t, http.MethodPost, "/auth/login", body, ""), http.StatusUnauthorized)

	rec := s.do(t, http.MethodPost, "/auth/login", body, "")
	requireStatus(t, rec, http.StatusTooManyRequests)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATA_DIR", "AUTH_REQUIRED", "TOKEN_TTL", "CORS_ALLOW_ORIGINS", "RATELIMIT_STRICT_REQUESTS"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, store.DriverFS, cfg.Store.Driver)
	require.Equal(t, "data", cfg.Store.DataDir)
	require.True(t, cfg.AuthRequired)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, []string{"*"}, cfg.AllowOrigins)
	require.Equal(t, httpx.StrictLimit, cfg.AuthLimit)
	require.Equal(t, "us-east-1", cfg.Store.S3.Region)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_FILE", "/tmp/x.db")
	t.Setenv("AUTH_REQUIRED", "false")
	t.Setenv("TOKEN_TTL", "15")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "0")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg := LoadConfig()
	require.Equal(t, 8081, cfg.Port)
	require.Equal(t, store.DriverSQLite, cfg.Store.Driver)
	require.Equal(t, "/tmp/x.db", cfg.Store.SQLiteFile)
	require.False(t, cfg.AuthRequired)
	require.Equal(t, 15*time.Minute, cfg.TokenTTL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	require.False(t, cfg.AuthLimit.Enabled())
	require.True(t, cfg.Store.S3.PathStyle)
}

func testConfig(t *testing.T, dir string) Config {
	t.Helper()

	for _, key := range []string{"STORE_DRIVER", "AUTH_REQUIRED", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(key, "")
	}
	t.Setenv("DATA_DIR", dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ENV", "test")
	return LoadConfig()
}

func post(t *testing.T, h http.Handler, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestApplicationServesAndPersists(t *testing.T) {
	dir := t.TempDir()

	a, err := New(t.Context(), testConfig(t, dir))
	require.NoError(t, err)

	rec := post(t, a.Handler(), "/auth/signup", copilotsdk.SignupRequest{Email: "a@x.io", Password: "p1", Name: "A"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = post(t, a.Handler(), "/auth/login", copilotsdk.LoginRequest{Email: "a@x.io", Password: "p1"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login copilotsdk.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = post(t, a.Handler(), "/clients", copilotsdk.CreateClientRequest{Name: "Acme"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(t, a.Handler(), "/clients", copilotsdk.CreateClientRequest{Name: "Acme"}, login.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var client copilotsdk.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	require.NoError(t, a.Shutdown())

	// A restarted process must never hand out an id that is already stored.
	b, err := New(t.Context(), testConfig(t, dir))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown() })

	require.GreaterOrEqual(t, b.ids.Last(), client.ID)
	require.Greater(t, b.ids.Next(), client.ID)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	cfg.Store.Driver = "floppy"

	_, err := New(t.Context(), cfg)
	require.ErrorContains(t, err, "floppy")
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	copilothttp "github.com/aussiebroadwan/copilot/internal/copilot/http"
	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/memory"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/aussiebroadwan/copilot/pkg/idx"
	"github.com/aussiebroadwan/copilot/pkg/jwtx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "copilot-test"

// failingStore answers every call with an error, like an unreachable backend.
type failingStore struct{}

var errBackendDown = errors.New("backend down")

func (failingStore) Read(context.Context, string) ([]byte, error) { return nil, errBackendDown }
func (failingStore) Write(context.Context, string, []byte) error  { return errBackendDown }
func (failingStore) Ping(context.Context) error                   { return errBackendDown }
func (failingStore) Close() error                                 { return nil }
func (failingStore) Driver() store.Driver                         { return store.DriverMemory }

type server struct {
	router *copilothttp.Router
	store  store.Store
	keys   *jwtx.KeyManager
}

// newServer wires a router over st (a fresh memory store when nil) with a
// frozen id clock: ids come out as 1_000, 1_001, ...
func newServer(t *testing.T, st store.Store, opts copilothttp.Options) *server {
	t.Helper()

	if st == nil {
		st = memory.New()
	}
	ids := idx.NewSequenceWithClock(func() time.Time { return time.UnixMilli(1_000) })

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer})
	require.NoError(t, err)

	if opts.CORS.AllowedOrigins == nil {
		opts.CORS = httpx.DefaultCORS
	}

	r := copilothttp.NewRouter(km.KeySet, km.Verifier, "test", st, slogx.Discard(), opts)
	r.AccountService = &service.AccountService{Store: st, IDs: ids}
	r.ClientService = &service.ClientService{Store: st, IDs: ids}
	r.TokenService = &service.TokenService{KeyManager: km, Issuer: testIssuer, TTL: time.Hour}
	r.ApplyRoutes()

	return &server{router: r, store: st, keys: km}
}

// do sends a request with an optional JSON body and bearer token.
func (s *server) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	require.Equal(t, code, rec.Code, "body: %s", rec.Body.String())
}

// httpxLimit allows a burst of n requests and refills too slowly to matter in a test.
func httpxLimit(n int) httpx.RateLimitConfig {
	return httpx.RateLimitConfig{RequestsPerWindow: n, Window: time.Hour, Burst: n}
}

var _ http.Handler = (*copilothttp.Router)(nil)

package copilotsdk_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	copilothttp "github.com/aussiebroadwan/copilot/internal/copilot/http"
	"github.com/aussiebroadwan/copilot/internal/copilot/service"
	"github.com/aussiebroadwan/copilot/internal/copilot/store/drivers/memory"
	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/aussiebroadwan/copilot/pkg/httpx"
	"github.com/aussiebroadwan/copilot/pkg/idx"
	"github.com/aussiebroadwan/copilot/pkg/jwtx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
	"github.com/stretchr/testify/require"
)

// startServer runs the real router, with bearer auth on, over a memory store.
func startServer(t *testing.T) string {
	t.Helper()

	st := memory.New()
	ids := idx.NewSequence()
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "copilot-test"})
	require.NoError(t, err)

	r := copilothttp.NewRouter(km.KeySet, km.Verifier, "test", st, slogx.Discard(), copilothttp.Options{
		AuthRequired: true,
		CORS:         httpx.DefaultCORS,
	})
	r.AccountService = &service.AccountService{Store: st, IDs: ids}
	r.ClientService = &service.ClientService{Store: st, IDs: ids}
	r.TokenService = &service.TokenService{KeyManager: km, Issuer: "copilot-test", TTL: time.Hour}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func newTestClient(t *testing.T, baseURL string) (*copilotsdk.SDKClient, *clock, *recorder) {
	t.Helper()

	s, clk, rec := newTestSession(t, nil)
	return copilotsdk.NewSDKClient(baseURL, s), clk, rec
}

func TestClientEndToEnd(t *testing.T) {
	baseURL := startServer(t)
	c, clk, _ := newTestClient(t, baseURL)
	ctx := t.Context()

	user, err := c.Signup(ctx, copilotsdk.SignupRequest{Email: "a@x.io", Password: "p1", Name: "A"})
	require.NoError(t, err)
	require.Equal(t, "a@x.io", user.Email)
	require.Equal(t, copilotsdk.LoggedOut, c.Session.State(), "signup does not log in")

	_, err = c.Signup(ctx, copilotsdk.SignupRequest{Email: "a@x.io", Password: "p2"})
	var apiErr *copilotsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "User already exists", apiErr.Message)

	_, err = c.Login(ctx, "a@x.io", "wrong")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, copilotsdk.LoggedOut, c.Session.State())

	user, err = c.Login(ctx, "a@x.io", "p1")
	require.NoError(t, err)
	require.Equal(t, copilotsdk.Active, c.Session.State())
	require.Equal(t, user, c.Session.User())

	client, err := c.CreateClient(ctx, copilotsdk.CreateClientRequest{Name: "Acme", GSTIN: "29ABC"})
	require.NoError(t, err)
	require.NotNil(t, client.Services)
	require.Empty(t, client.Services)

	clk.Advance(30 * time.Minute)
	svc, err := c.AddService(ctx, client.ID, copilotsdk.AddServiceRequest{Name: "GST", Status: "pending"})
	require.NoError(t, err)
	require.Equal(t, clk.Now(), c.Session.LastActivity(), "successful calls count as activity")

	services, err := c.ListServices(ctx, client.ID)
	require.NoError(t, err)
	require.Equal(t, []copilotsdk.Service{*svc}, services)

	_, err = c.ListServices(ctx, client.ID+999)
	require.True(t, copilotsdk.IsNotFound(err))
	require.Equal(t, copilotsdk.Active, c.Session.State(), "a 404 leaves the session alone")

	clients, err := c.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Len(t, clients[0].Services, 1)
}

func TestClientRefusesIdleSession(t *testing.T) {
	baseURL := startServer(t)
	c, clk, rec := newTestClient(t, baseURL)
	ctx := t.Context()

	_, err := c.Signup(ctx, copilotsdk.SignupRequest{Email: "a@x.io", Password: "p1"})
	require.NoError(t, err)
	_, err = c.Login(ctx, "a@x.io", "p1")
	require.NoError(t, err)

	clk.Advance(61 * time.Minute)

	_, err = c.ListClients(ctx)
	require.ErrorIs(t, err, copilotsdk.ErrNotAuthenticated)
	require.Equal(t, copilotsdk.LoggedOut, c.Session.State())
	require.Equal(t, []string{copilotsdk.SignInPath}, rec.Redirects())
}

func TestClientLogsOutOnRejectedToken(t *testing.T) {
	baseURL := startServer(t)
	c, _, rec := newTestClient(t, baseURL)

	// A token the server never issued.
	require.NoError(t, c.Session.Begin("forged.token.value", alice))

	_, err := c.ListClients(t.Context())
	require.ErrorIs(t, err, copilotsdk.ErrUnauthorized)
	require.Equal(t, copilotsdk.LoggedOut, c.Session.State())
	require.Empty(t, c.Session.Token())
	require.Equal(t, []string{copilotsdk.SignInPath}, rec.Redirects())
}

func TestClientHealthAndJWKS(t *testing.T) {
	baseURL := startServer(t)
	c, _, _ := newTestClient(t, baseURL)

	live, err := c.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := c.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Store)

	jwks, err := c.GetJWKS(t.Context())
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
}

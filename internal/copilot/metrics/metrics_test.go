package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	tests := map[string]string{
		"":                                "/",
		"/":                               "/",
		"/clients":                        "/clients",
		"/clients/1700000000000/services": "/clients/{id}/services",
		"/clients/abc/services":           "/clients/abc/services",
		"/auth/login/":                    "/auth/login",
	}
	for in, want := range tests {
		require.Equal(t, want, CanonicalPath(in), "path %q", in)
	}
}

func TestInstrumentHandlerCountsRequests(t *testing.T) {
	h := InstrumentHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/clients/{id}/services", "404"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/clients/42/services", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/clients/{id}/services", "404"))

	require.Equal(t, before+1, after)
}

func TestRecordDocumentOp(t *testing.T) {
	before := testutil.ToFloat64(documentOps.WithLabelValues("clients", "save", "ok"))
	RecordDocumentOp("clients", "save", "ok")
	require.Equal(t, before+1, testutil.ToFloat64(documentOps.WithLabelValues("clients", "save", "ok")))
}

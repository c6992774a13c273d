package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Witch19/rrhh-console/internal/core/domain"
)

func TestObserveSessionChange(t *testing.T) {
	before := testutil.ToFloat64(SessionTransitionsTotal.WithLabelValues("expired"))
	ObserveSessionChange(domain.SessionChange{Reason: domain.ReasonExpired})
	assert.Equal(t, before+1, testutil.ToFloat64(SessionTransitionsTotal.WithLabelValues("expired")))
}

func TestInstrumentBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	before := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("418", "get"))

	client := &http.Client{Transport: InstrumentBackend(nil)}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, before+1, testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("418", "get")))
}

package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	Register(prometheus.NewRegistry())

	ObserveRequest(http.MethodGet, http.StatusOK, 20*time.Millisecond)
	ObserveRequest(http.MethodGet, http.StatusOK, 30*time.Millisecond)
	ObserveRequest(http.MethodPost, http.StatusUnauthorized, 10*time.Millisecond)
	ObserveRequestError(http.MethodGet)

	assert.Equal(t, float64(2), testutil.ToFloat64(RequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(RequestsTotal.WithLabelValues("POST", "401")))
	assert.Equal(t, float64(1), testutil.ToFloat64(RequestErrorsTotal.WithLabelValues("GET")))
}

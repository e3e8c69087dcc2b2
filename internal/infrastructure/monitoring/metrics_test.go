package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordLifecycle("install", "excel", "success", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.LifecycleTotal.WithLabelValues("install", "excel", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.LifecycleTotal.WithLabelValues("install", "excel", "success")))
}

func TestRecordLifecycle(t *testing.T) {
	m := NewMetrics()

	m.RecordLifecycle("install", "excel", "success", 10*time.Millisecond)
	m.RecordLifecycle("install", "excel", "network", 5*time.Millisecond)
	m.RecordLifecycle("uninstall", "word", "success", time.Millisecond)

	assert.Equal(t, 3, testutil.CollectAndCount(m.LifecycleTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LifecycleTotal.WithLabelValues("install", "excel", "network")))
}

func TestSetAppStatus(t *testing.T) {
	m := NewMetrics()

	m.SetAppStatus("excel", true, false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HostsInstalled.WithLabelValues("excel")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ManifestsInstalled.WithLabelValues("excel")))

	m.SetAppStatus("excel", true, true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ManifestsInstalled.WithLabelValues("excel")))
}

func TestStreamGauges(t *testing.T) {
	m := NewMetrics()

	m.IncStreamClients()
	m.IncStreamClients()
	m.DecStreamClients()
	m.IncStreamMessages()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamClients))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StreamMessages))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/apps/:app/installed", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for _, app := range []string{"excel", "word"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/apps/"+app+"/installed", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/apps/:app/installed", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "optivise_installer_http_requests_total")
	assert.Contains(t, string(body), "optivise_installer_uptime_seconds")
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcssewl/optivise-installer/internal/domain/host"
	"github.com/bcssewl/optivise-installer/internal/domain/launcher"
	"github.com/bcssewl/optivise-installer/internal/domain/lifecycle"
	"github.com/bcssewl/optivise-installer/internal/domain/status"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/resilience"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Publisher is told about every completed transition
type Publisher interface {
	Publish(reason string)
}

// BreakerReporter exposes the manifest endpoint breaker
type BreakerReporter interface {
	BreakerState() resilience.State
}

// Handlers contains all HTTP handlers
type Handlers struct {
	inspector *status.Inspector
	lifecycle *lifecycle.Manager
	launcher  *launcher.Launcher
	policy    host.Policy
	publisher Publisher
	breaker   BreakerReporter
	logger    *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	inspector *status.Inspector,
	manager *lifecycle.Manager,
	launch *launcher.Launcher,
	policy host.Policy,
	logger *logging.Logger,
) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		inspector: inspector,
		lifecycle: manager,
		launcher:  launch,
		policy:    policy,
		logger:    logger.Named("api"),
	}
}

// WithPublisher attaches the status stream
func (h *Handlers) WithPublisher(p Publisher) *Handlers {
	h.publisher = p
	return h
}

// WithBreaker attaches the manifest endpoint breaker for health reporting
func (h *Handlers) WithBreaker(b BreakerReporter) *Handlers {
	h.breaker = b
	return h
}

// Register mounts every installer route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/status", h.GetAllStatus)
	r.GET("/launchable", h.Launchable)
	r.DELETE("/manifests", h.UninstallAll)

	apps := r.Group("/apps/:app")
	apps.GET("/installed", h.CheckHostInstalled)
	apps.GET("/manifest", h.CheckManifestInstalled)
	apps.POST("/install", h.InstallManifest)
	apps.DELETE("/manifest", h.UninstallManifest)
	apps.POST("/open", h.LaunchHostApplication)
}

// Health handles liveness checks
func (h *Handlers) Health(c *gin.Context) {
	breaker := resilience.StateClosed
	if h.breaker != nil {
		breaker = h.breaker.BreakerState()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"service":           "optivise-installer",
		"version":           Version,
		"manifest_endpoint": breaker.String(),
	})
}

func (h *Handlers) publish(reason string) {
	if h.publisher != nil {
		h.publisher.Publish(reason)
	}
}

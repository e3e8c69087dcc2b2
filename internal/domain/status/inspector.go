package status

import (
	"os"

	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/domain/host"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
)

// AppStatus is the observed state of one host application
type AppStatus struct {
	App               host.App `json:"-"`
	Name              string   `json:"app"`
	OfficeInstalled   bool     `json:"office_installed"`
	ManifestInstalled bool     `json:"manifest_installed"`
	Supported         bool     `json:"supported"`
}

// Inspector probes the filesystem for host and manifest presence
type Inspector struct {
	registry *host.Registry
	policy   host.Policy
	logger   *logging.Logger
}

// NewInspector creates a status inspector
func NewInspector(registry *host.Registry, policy host.Policy, logger *logging.Logger) *Inspector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Inspector{
		registry: registry,
		policy:   policy,
		logger:   logger.Named("status"),
	}
}

// IsHostInstalled reports whether the host's application bundle exists
func (i *Inspector) IsHostInstalled(app host.App) bool {
	return i.exists(app, i.registry.BundlePath(app))
}

// IsManifestInstalled reports whether the manifest file exists
func (i *Inspector) IsManifestInstalled(app host.App) bool {
	path, err := i.registry.ManifestPath(app)
	if err != nil {
		i.logger.Debug("manifest path unavailable", zap.Stringer("app", app), zap.Error(err))
		return false
	}
	return i.exists(app, path)
}

// Get returns the status of a single host
func (i *Inspector) Get(app host.App) AppStatus {
	return AppStatus{
		App:               app,
		Name:              app.DisplayName(),
		OfficeInstalled:   i.IsHostInstalled(app),
		ManifestInstalled: i.IsManifestInstalled(app),
		Supported:         i.policy.Supported(app),
	}
}

// All returns one status per host in Excel, Word, PowerPoint order
func (i *Inspector) All() []AppStatus {
	apps := host.All()
	out := make([]AppStatus, 0, len(apps))
	for _, app := range apps {
		out = append(out, i.Get(app))
	}
	return out
}

// Launchable returns hosts that are supported and present on disk
func (i *Inspector) Launchable() []host.App {
	var out []host.App
	for _, s := range i.All() {
		if s.Supported && s.OfficeInstalled {
			out = append(out, s.App)
		}
	}
	return out
}

// AnyManifestInstalled reports whether at least one host has the manifest
func (i *Inspector) AnyManifestInstalled() bool {
	for _, app := range host.All() {
		if i.IsManifestInstalled(app) {
			return true
		}
	}
	return false
}

func (i *Inspector) exists(app host.App, path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		i.logger.Debug("stat failed",
			zap.Stringer("app", app),
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return false
}

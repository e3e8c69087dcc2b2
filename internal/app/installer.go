package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/domain/host"
	"github.com/bcssewl/optivise-installer/internal/domain/launcher"
	"github.com/bcssewl/optivise-installer/internal/domain/lifecycle"
	"github.com/bcssewl/optivise-installer/internal/domain/status"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/config"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
	"github.com/bcssewl/optivise-installer/internal/providers/manifest"
	"github.com/bcssewl/optivise-installer/internal/shared/utils"
)

// Installer holds the wired core components
type Installer struct {
	Registry  *host.Registry
	Policy    host.Policy
	Inspector *status.Inspector
	Fetcher   *manifest.Fetcher
	Lifecycle *lifecycle.Manager
	Launcher  *launcher.Launcher
}

// Option customizes construction
type Option func(*options)

type options struct {
	home     host.HomeResolver
	opener   launcher.Opener
	recorder lifecycle.Recorder
}

// WithHome overrides home directory resolution
func WithHome(home host.HomeResolver) Option {
	return func(o *options) { o.home = home }
}

// WithOpener overrides how host applications are started
func WithOpener(opener launcher.Opener) Option {
	return func(o *options) { o.opener = opener }
}

// WithRecorder attaches lifecycle metrics
func WithRecorder(r lifecycle.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// New builds the core from configuration
func New(cfg *config.Config, logger *logging.Logger, opts ...Option) (*Installer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.home == nil {
		o.home = HomeResolver(cfg.Hosts)
	}

	policy, err := host.ParsePolicy(cfg.Hosts.SupportedApps)
	if err != nil {
		return nil, fmt.Errorf("invalid SUPPORTED_APPS: %w", err)
	}

	if err := utils.ValidateManifestURL(cfg.Manifest.URL); err != nil {
		return nil, fmt.Errorf("invalid MANIFEST_URL: %w", err)
	}

	registry := host.NewRegistry(o.home, cfg.Hosts.ApplicationsRoot)

	fetcher := manifest.NewFetcher(manifest.Config{
		Timeout:          cfg.Manifest.Timeout,
		MaxBytes:         cfg.Manifest.MaxBytes,
		BreakerEnabled:   cfg.Manifest.BreakerEnabled,
		BreakerThreshold: cfg.Manifest.BreakerThreshold,
		BreakerCooldown:  cfg.Manifest.BreakerCooldown,
	}, logger)

	manager := lifecycle.NewManager(registry, fetcher, cfg.Manifest.URL, logger)
	if o.recorder != nil {
		manager = manager.WithRecorder(o.recorder)
	}

	logger.Debug("installer core ready",
		zap.String("manifest_url", cfg.Manifest.URL),
		zap.Strings("supported_apps", cfg.Hosts.SupportedApps),
		zap.String("applications_root", cfg.Hosts.ApplicationsRoot),
	)

	return &Installer{
		Registry:  registry,
		Policy:    policy,
		Inspector: status.NewInspector(registry, policy, logger),
		Fetcher:   fetcher,
		Lifecycle: manager,
		Launcher:  launcher.New(registry, o.opener, logger),
	}, nil
}

// HomeResolver picks the configured home override or the user's home
func HomeResolver(cfg config.HostsConfig) host.HomeResolver {
	if cfg.HomeOverride != "" {
		return host.StaticHome(cfg.HomeOverride)
	}
	return host.UserHome{}
}

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/domain/host"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/tracing"
	"github.com/bcssewl/optivise-installer/internal/providers/manifest"
	"github.com/bcssewl/optivise-installer/internal/shared/id"
	"github.com/bcssewl/optivise-installer/internal/shared/utils"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// NotInstalledMessage is returned by Uninstall when there is nothing to remove
const NotInstalledMessage = "Add-in is not installed"

// ManifestSource retrieves validated manifest bytes
type ManifestSource interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Recorder receives one observation per lifecycle operation
type Recorder interface {
	RecordLifecycle(operation, app, result string, duration time.Duration)
}

// Outcome is the result of one host's uninstall within UninstallAll
type Outcome struct {
	App     host.App `json:"-"`
	Name    string   `json:"app"`
	Message string   `json:"message,omitempty"`
	Err     error    `json:"-"`
	Error   string   `json:"error,omitempty"`
}

// Manager performs install and uninstall transitions
type Manager struct {
	registry    *host.Registry
	source      ManifestSource
	manifestURL string
	fs          FS
	recorder    Recorder
	logger      *logging.Logger
}

// NewManager creates a lifecycle manager
func NewManager(registry *host.Registry, source ManifestSource, manifestURL string, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		registry:    registry,
		source:      source,
		manifestURL: manifestURL,
		fs:          OSFS{},
		logger:      logger.Named("lifecycle"),
	}
}

// WithFS replaces the filesystem
func (m *Manager) WithFS(fsys FS) *Manager {
	m.fs = fsys
	return m
}

// WithRecorder attaches a metrics recorder
func (m *Manager) WithRecorder(r Recorder) *Manager {
	m.recorder = r
	return m
}

// Install fetches the manifest and writes it into the host's side-load directory
func (m *Manager) Install(ctx context.Context, app host.App) (msg string, err error) {
	start := time.Now()
	log := m.operationLogger(ctx, app)
	defer func() { m.record("install", app, err, start) }()

	body, err := m.source.Fetch(ctx, m.manifestURL)
	if err != nil {
		log.Warn("install aborted: fetch failed", zap.Error(err))
		return "", err
	}

	dir, err := m.registry.SideloadDir(app)
	if err != nil {
		log.Warn("install aborted: home unresolved", zap.Error(err))
		return "", &Error{Kind: KindHomeUnresolved, Err: err}
	}

	if err := m.fs.MkdirAll(dir, dirPerm); err != nil {
		log.Error("create side-load directory", zap.String("path", dir), zap.Error(err))
		if errors.Is(err, fs.ErrPermission) {
			return "", &Error{Kind: KindPermissionDenied, Op: "creating", Path: dir, Err: err}
		}
		return "", &Error{Kind: KindDirectoryCreate, Path: dir, Err: err}
	}

	path, err := m.registry.ManifestPath(app)
	if err != nil {
		return "", &Error{Kind: KindHomeUnresolved, Err: err}
	}

	if err := m.fs.WriteFile(path, body, filePerm); err != nil {
		log.Error("write manifest", zap.String("path", path), zap.Error(err))
		if errors.Is(err, fs.ErrPermission) {
			return "", &Error{Kind: KindPermissionDenied, Op: "writing to", Path: path, Err: err}
		}
		return "", &Error{Kind: KindWrite, Path: path, Err: err}
	}

	log.Info("manifest installed",
		zap.String("path", path),
		zap.Int("bytes", len(body)),
		zap.String("sha256", utils.ShortDigest(body)),
	)
	name := app.DisplayName()
	return fmt.Sprintf("Optivise add-in installed for %s. Restart %s to activate.", name, name), nil
}

// Uninstall removes the host's manifest. A missing manifest is not an error.
func (m *Manager) Uninstall(ctx context.Context, app host.App) (msg string, err error) {
	start := time.Now()
	log := m.operationLogger(ctx, app)
	defer func() { m.record("uninstall", app, err, start) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := m.registry.ManifestPath(app)
	if err != nil {
		log.Warn("uninstall aborted: home unresolved", zap.Error(err))
		return "", &Error{Kind: KindHomeUnresolved, Err: err}
	}

	if _, statErr := m.fs.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		log.Debug("manifest already absent", zap.String("path", path))
		return NotInstalledMessage, nil
	}

	if err := m.fs.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NotInstalledMessage, nil
		}
		log.Error("remove manifest", zap.String("path", path), zap.Error(err))
		return "", &Error{Kind: KindDelete, Path: path, Err: err}
	}

	log.Info("manifest removed", zap.String("path", path))
	name := app.DisplayName()
	return fmt.Sprintf("Optivise add-in removed from %s. Restart %s to complete.", name, name), nil
}

// UninstallAll removes the manifest from every host that has one, in host
// order. A failure for one host does not stop the others.
func (m *Manager) UninstallAll(ctx context.Context) []Outcome {
	var outcomes []Outcome
	for _, app := range host.All() {
		path, err := m.registry.ManifestPath(app)
		if err != nil {
			continue
		}
		if _, err := m.fs.Stat(path); err != nil {
			continue
		}

		msg, err := m.Uninstall(ctx, app)
		outcome := Outcome{App: app, Name: app.DisplayName(), Message: msg, Err: err}
		if err != nil {
			outcome.Error = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// operationLogger tags one operation's log lines with its ids
func (m *Manager) operationLogger(ctx context.Context, app host.App) *zap.Logger {
	fields := []zap.Field{zap.Stringer("operation_id", id.NewOperationID())}
	if rid := tracing.RequestIDFrom(ctx); rid != "" {
		fields = append(fields, zap.Stringer("request_id", rid))
	}
	return m.logger.ForApp(app.String()).With(fields...)
}

func (m *Manager) record(op string, app host.App, err error, start time.Time) {
	if m.recorder == nil {
		return
	}
	m.recorder.RecordLifecycle(op, app.String(), resultLabel(err), time.Since(start))
}

// resultLabel is the metrics label for an operation's outcome
func resultLabel(err error) string {
	if err == nil {
		return "success"
	}
	if k := KindOf(err); k != 0 {
		return k.String()
	}
	if k := manifest.KindOf(err); k != 0 {
		return k.String()
	}
	return "error"
}

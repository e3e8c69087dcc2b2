// Package launcher opens a host application through an external opener.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/domain/host"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
)

// ErrNotInstalled is returned when the host's bundle is missing
var ErrNotInstalled = errors.New("application not installed")

// NotInstalledError names the host whose bundle is missing
type NotInstalledError struct {
	App  host.App
	Path string
}

func (e *NotInstalledError) Error() string {
	return e.App.DisplayName() + " is not installed"
}

// Is matches ErrNotInstalled
func (e *NotInstalledError) Is(target error) bool {
	return target == ErrNotInstalled
}

// Opener hands a path to the operating system
type Opener interface {
	Open(ctx context.Context, path string) error
}

// SystemOpener runs the platform's "open" command
type SystemOpener struct{}

// Open implements Opener
func (SystemOpener) Open(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		if len(out) > 0 {
			return fmt.Errorf("%w: %s", err, out)
		}
		return err
	}
	return nil
}

// Launcher starts host applications
type Launcher struct {
	registry *host.Registry
	opener   Opener
	logger   *logging.Logger
}

// New creates a launcher
func New(registry *host.Registry, opener Opener, logger *logging.Logger) *Launcher {
	if opener == nil {
		opener = SystemOpener{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Launcher{registry: registry, opener: opener, logger: logger.Named("launcher")}
}

// Open starts the host application
func (l *Launcher) Open(ctx context.Context, app host.App) error {
	path := l.registry.BundlePath(app)
	if _, err := os.Stat(path); err != nil {
		return &NotInstalledError{App: app, Path: path}
	}

	if err := l.opener.Open(ctx, path); err != nil {
		l.logger.Warn("open failed", zap.Stringer("app", app), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("Failed to open %s: %w", app.DisplayName(), err)
	}

	l.logger.Info("application opened", zap.Stringer("app", app), zap.String("path", path))
	return nil
}

package host

import (
	"errors"
	"os"

	"github.com/bcssewl/optivise-installer/internal/shared/paths"
)

// ErrHomeUnresolved is returned when the home directory cannot be determined
var ErrHomeUnresolved = errors.New("could not determine home directory")

// HomeResolver supplies the current user's home directory
type HomeResolver interface {
	HomeDir() (string, error)
}

// UserHome resolves the home directory from the process environment
type UserHome struct{}

// HomeDir implements HomeResolver
func (UserHome) HomeDir() (string, error) {
	return os.UserHomeDir()
}

// StaticHome always resolves to a fixed directory. The empty value never resolves.
type StaticHome string

// HomeDir implements HomeResolver
func (h StaticHome) HomeDir() (string, error) {
	if h == "" {
		return "", ErrHomeUnresolved
	}
	return string(h), nil
}

// Registry computes per-host filesystem locations
type Registry struct {
	home     HomeResolver
	appsRoot string
}

// NewRegistry creates a registry. An empty appsRoot means /Applications.
func NewRegistry(home HomeResolver, appsRoot string) *Registry {
	if home == nil {
		home = UserHome{}
	}
	if appsRoot == "" {
		appsRoot = paths.DefaultApplicationsRoot
	}
	return &Registry{home: home, appsRoot: appsRoot}
}

// BundlePath returns where the host's application bundle is expected
func (r *Registry) BundlePath(app App) string {
	return paths.BundlePath(r.appsRoot, app.BundleName())
}

// SideloadDir returns the host's side-load directory
func (r *Registry) SideloadDir(app App) (string, error) {
	home, err := r.home.HomeDir()
	if err != nil || paths.ValidateHome(home) != nil {
		return "", ErrHomeUnresolved
	}
	return paths.SideloadDir(home, app.ContainerID()), nil
}

// ManifestPath returns the full manifest file path for the host
func (r *Registry) ManifestPath(app App) (string, error) {
	dir, err := r.SideloadDir(app)
	if err != nil {
		return "", err
	}
	return paths.ManifestFile(dir), nil
}

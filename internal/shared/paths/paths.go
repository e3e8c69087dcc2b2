package paths

import (
	"fmt"
	"path/filepath"
)

// Container layout, relative to the user's home directory
const (
	// ContainersRoot holds one sandbox container per host application
	ContainersRoot = "Library/Containers"

	// SideloadSubdir is the developer add-in folder inside a container
	SideloadSubdir = "Data/Documents/wef"
)

// ManifestFilename is shared by every host application
const ManifestFilename = "optivise.xml"

// DefaultApplicationsRoot is where host bundles are installed
const DefaultApplicationsRoot = "/Applications"

// SideloadDir returns the side-load directory for a container
func SideloadDir(home, containerID string) string {
	return filepath.Join(home, ContainersRoot, containerID, SideloadSubdir)
}

// ManifestFile returns the manifest path inside a side-load directory
func ManifestFile(sideloadDir string) string {
	return filepath.Join(sideloadDir, ManifestFilename)
}

// BundlePath returns the path of an application bundle under root
func BundlePath(root, bundleName string) string {
	if root == "" {
		root = DefaultApplicationsRoot
	}
	return filepath.Join(root, bundleName)
}

// ValidateHome checks that a home directory can anchor container paths
func ValidateHome(home string) error {
	if home == "" {
		return fmt.Errorf("home directory cannot be empty")
	}
	if !filepath.IsAbs(home) {
		return fmt.Errorf("home directory must be absolute: %s", home)
	}
	return nil
}

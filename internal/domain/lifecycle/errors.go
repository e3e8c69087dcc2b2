package lifecycle

import (
	"errors"
	"fmt"
)

// Kind classifies a filesystem-side lifecycle failure
type Kind int

const (
	KindHomeUnresolved Kind = iota + 1
	KindPermissionDenied
	KindDirectoryCreate
	KindWrite
	KindDelete
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindHomeUnresolved:
		return "home_unresolved"
	case KindPermissionDenied:
		return "permission_denied"
	case KindDirectoryCreate:
		return "directory_create"
	case KindWrite:
		return "write"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// PermissionHint tells the user how to grant the installer access to the
// host's container.
const PermissionHint = "On macOS 14+, try: right-click the app → Open, or grant Full Disk Access in System Settings → Privacy & Security."

// Error is a lifecycle failure
type Error struct {
	Kind Kind
	// Op is "creating" or "writing to" for permission failures
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHomeUnresolved:
		return "Could not determine home directory"
	case KindPermissionDenied:
		return fmt.Sprintf("Permission denied %s %s. %s", e.Op, e.Path, PermissionHint)
	case KindDirectoryCreate:
		return fmt.Sprintf("Failed to create directory %s: %v", e.Path, e.Err)
	case KindWrite:
		return fmt.Sprintf("Failed to write manifest: %v", e.Err)
	case KindDelete:
		return fmt.Sprintf("Failed to remove manifest: %v", e.Err)
	default:
		return fmt.Sprintf("lifecycle error: %v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the lifecycle kind of err, or zero
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

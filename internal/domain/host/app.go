package host

import (
	"fmt"
	"strings"
)

// App identifies an Office host application
type App int

const (
	Excel App = iota
	Word
	PowerPoint
)

// All returns every host in display order
func All() []App {
	return []App{Excel, Word, PowerPoint}
}

// ContainerID returns the sandbox container identifier
func (a App) ContainerID() string {
	switch a {
	case Excel:
		return "com.microsoft.Excel"
	case Word:
		return "com.microsoft.Word"
	case PowerPoint:
		return "com.microsoft.Powerpoint"
	default:
		panic(fmt.Sprintf("host: unknown app %d", int(a)))
	}
}

// BundleName returns the application bundle directory name
func (a App) BundleName() string {
	switch a {
	case Excel:
		return "Microsoft Excel.app"
	case Word:
		return "Microsoft Word.app"
	case PowerPoint:
		return "Microsoft PowerPoint.app"
	default:
		panic(fmt.Sprintf("host: unknown app %d", int(a)))
	}
}

// DisplayName returns the human-readable name
func (a App) DisplayName() string {
	switch a {
	case Excel:
		return "Excel"
	case Word:
		return "Word"
	case PowerPoint:
		return "PowerPoint"
	default:
		panic(fmt.Sprintf("host: unknown app %d", int(a)))
	}
}

// String returns the lowercase wire name
func (a App) String() string {
	return strings.ToLower(a.DisplayName())
}

// Parse resolves a wire or display name to an App
func Parse(name string) (App, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "excel":
		return Excel, nil
	case "word":
		return Word, nil
	case "powerpoint":
		return PowerPoint, nil
	default:
		return 0, fmt.Errorf("unknown host application: %q", name)
	}
}

// MarshalText encodes the wire name
func (a App) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a wire name
func (a *App) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

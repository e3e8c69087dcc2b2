package host

// Policy decides which hosts the install pipeline is enabled for.
// Hosts outside the policy stay inspectable and uninstallable.
type Policy struct {
	supported map[App]bool
}

// DefaultPolicy enables Excel only
func DefaultPolicy() Policy {
	return NewPolicy(Excel)
}

// NewPolicy enables the given hosts
func NewPolicy(apps ...App) Policy {
	p := Policy{supported: make(map[App]bool, len(apps))}
	for _, a := range apps {
		p.supported[a] = true
	}
	return p
}

// ParsePolicy builds a policy from wire names such as "excel,word"
func ParsePolicy(names []string) (Policy, error) {
	apps := make([]App, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		a, err := Parse(n)
		if err != nil {
			return Policy{}, err
		}
		apps = append(apps, a)
	}
	return NewPolicy(apps...), nil
}

// Supported reports whether install is enabled for app
func (p Policy) Supported(app App) bool {
	return p.supported[app]
}

package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateManifestURL checks that raw is an absolute http(s) URL with a host
func ValidateManifestURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("manifest URL is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid manifest URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid manifest URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid manifest URL %q: missing host", raw)
	}
	return nil
}

// Package config provides 12-factor configuration for the installer.
//
// Configuration is loaded from environment variables with defaults suitable
// for a local desktop install. CLI flags override individual values.
//
// Configuration Sections:
//   - Server: HTTP listen address (loopback by default)
//   - Logging: log level and output format
//   - RateLimit: per-client rate limiting on the API
//   - Manifest: download URL, timeout, size cap, breaker
//   - Hosts: install policy, applications root, home override
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - MANIFEST_URL, MANIFEST_TIMEOUT, MANIFEST_MAX_BYTES
//   - MANIFEST_BREAKER_ENABLED, MANIFEST_BREAKER_THRESHOLD, MANIFEST_BREAKER_COOLDOWN
//   - SUPPORTED_APPS, APPLICATIONS_ROOT, HOME_DIR_OVERRIDE
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Println(cfg.Server.Addr())
package config

// Package utils holds small helpers shared across the installer: content
// digests for manifests and manifest URL validation.
package utils

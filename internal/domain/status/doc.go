// Package status answers "is the host installed" and "is the manifest in place".
//
// Status is a projection of the filesystem recomputed on every call. Any
// failure while probing (missing home directory, permission errors, broken
// paths) reads as "not installed": status is display-only and never fails.
package status

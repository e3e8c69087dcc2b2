// Package lifecycle installs and removes the add-in manifest for a host.
//
// Each host is either Absent or Installed, and only Install and Uninstall
// move it between the two. Install runs fetch, mkdir, write in that order and
// writes nothing unless a complete, validated manifest was received. Both
// operations are idempotent.
//
// Unlike the status package, every failure here is returned to the caller.
// Fetch failures pass through unchanged as *manifest.Error; filesystem
// failures are *lifecycle.Error.
package lifecycle

// Package host holds static knowledge about the Office host applications.
//
// The set of hosts is closed: Excel, Word and PowerPoint. Every fact about a
// host (container id, bundle path, display name) is computed by an exhaustive
// switch, so adding a host is a compile-visible change.
//
// Components:
//   - App: the host enumeration
//   - Registry: resolves bundle, side-load and manifest paths for an App
//   - HomeResolver: injected source of the user's home directory
//   - Policy: which hosts the install pipeline is enabled for
//
// Example Usage:
//
//	reg := host.NewRegistry(host.UserHome{}, "")
//	path, err := reg.ManifestPath(host.Excel)
package host

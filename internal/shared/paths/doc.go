// Package paths provides the fixed filesystem conventions used by the installer.
//
// Office for Mac sandboxes every host application inside a per-user container.
// Add-in manifests placed in the container's "wef" folder are side-loaded by the
// host on its next start.
//
// # Directory Structure
//
//	<home>/
//	  └── Library/Containers/
//	        └── <container-id>/         (com.microsoft.Excel, ...)
//	              └── Data/Documents/wef/
//	                    └── optivise.xml
//
//	/Applications/
//	  └── Microsoft Excel.app           (host bundles)
//
// # Usage
//
//	dir := paths.SideloadDir(home, "com.microsoft.Excel")
//	file := paths.ManifestFile(dir)
package paths

// Command installer manages the Optivise add-in manifest from a terminal.
//
// Usage:
//
//	installer [-o text|json|yaml] [-v] <command> [app]
//
// Commands:
//
//	status               show every host and whether the add-in is present
//	launchable           list supported hosts that are installed
//	install <app>        download the manifest and side-load it
//	uninstall <app>      remove the manifest
//	uninstall-all        remove the manifest from every host
//	open <app>           start the host application
//
// Configuration is read from the same environment variables as the server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

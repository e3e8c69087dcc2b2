// Package app assembles the installer core from configuration.
//
// Both the HTTP server and the command line tool build the same set of
// components: a host registry, the support policy, a status inspector, the
// manifest fetcher, the lifecycle manager and the launcher.
//
// Example Usage:
//
//	installer, err := app.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	msg, err := installer.Lifecycle.Install(ctx, host.Excel)
package app

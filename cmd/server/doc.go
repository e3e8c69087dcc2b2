// Package main is the entry point for the Optivise installer service.
//
// The service exposes the add-in lifecycle over a loopback HTTP API so a
// desktop shell can query host status, install or remove the manifest and
// launch Office applications.
//
// The server provides:
//   - REST API for status, install, uninstall and launch
//   - WebSocket status stream refreshed after every change
//   - Prometheus metrics
//   - Rate limiting and loopback-only CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8790
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main

/*
Package monitoring provides Prometheus metrics for the installer.

Each Metrics value owns a private registry, so several collectors can
coexist in one process (tests create one per case).

Collected series:

  - HTTP requests by route template and status
  - install/uninstall operations by host and result kind
  - last observed host and manifest presence per host
  - status stream clients and delivered snapshots

Usage:

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	manager := lifecycle.NewManager(...).WithRecorder(metrics)
*/
package monitoring

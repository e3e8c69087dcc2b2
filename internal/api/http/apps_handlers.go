package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bcssewl/optivise-installer/internal/domain/host"
)

// appRef is the wire form of a host in list responses
type appRef struct {
	App  host.App `json:"app"`
	Name string   `json:"name"`
}

// GetAllStatus returns the status of every host
func (h *Handlers) GetAllStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"apps":    h.inspector.All(),
	})
}

// CheckHostInstalled reports whether the host application is present
func (h *Handlers) CheckHostInstalled(c *gin.Context) {
	app, ok := appParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"app":       app,
		"installed": h.inspector.IsHostInstalled(app),
	})
}

// CheckManifestInstalled reports whether the add-in manifest is present
func (h *Handlers) CheckManifestInstalled(c *gin.Context) {
	app, ok := appParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"app":       app,
		"installed": h.inspector.IsManifestInstalled(app),
	})
}

// InstallManifest downloads the manifest and side-loads it for the host
func (h *Handlers) InstallManifest(c *gin.Context) {
	app, ok := appParam(c)
	if !ok {
		return
	}
	if !h.policy.Supported(app) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"kind":    "unsupported",
			"error":   fmt.Sprintf("Optivise does not support %s yet", app.DisplayName()),
		})
		return
	}

	msg, err := h.lifecycle.Install(c.Request.Context(), app)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish("install")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// UninstallManifest removes the host's manifest
func (h *Handlers) UninstallManifest(c *gin.Context) {
	app, ok := appParam(c)
	if !ok {
		return
	}

	msg, err := h.lifecycle.Uninstall(c.Request.Context(), app)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish("uninstall")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// UninstallAll removes the manifest from every host that has one
func (h *Handlers) UninstallAll(c *gin.Context) {
	outcomes := h.lifecycle.UninstallAll(c.Request.Context())

	success := true
	for _, o := range outcomes {
		if o.Err != nil {
			success = false
			h.logger.Warn("uninstall failed", zap.Stringer("app", o.App), zap.Error(o.Err))
		}
	}
	if len(outcomes) > 0 {
		h.publish("uninstall")
	}

	code := http.StatusOK
	if !success {
		code = http.StatusInternalServerError
	}
	c.JSON(code, gin.H{"success": success, "results": outcomes})
}

// Launchable lists hosts that are supported and installed
func (h *Handlers) Launchable(c *gin.Context) {
	apps := h.inspector.Launchable()
	refs := make([]appRef, 0, len(apps))
	for _, app := range apps {
		refs = append(refs, appRef{App: app, Name: app.DisplayName()})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "apps": refs})
}

// LaunchHostApplication starts the host application
func (h *Handlers) LaunchHostApplication(c *gin.Context) {
	app, ok := appParam(c)
	if !ok {
		return
	}
	if err := h.launcher.Open(c.Request.Context(), app); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// appParam parses the :app path segment, answering 400 when it is unknown
func appParam(c *gin.Context) (host.App, bool) {
	app, err := host.Parse(c.Param("app"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"kind":    "unknown_app",
			"error":   fmt.Sprintf("Unknown application: %s", c.Param("app")),
		})
		return 0, false
	}
	return app, true
}

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bcssewl/optivise-installer/internal/domain/launcher"
	"github.com/bcssewl/optivise-installer/internal/domain/lifecycle"
	"github.com/bcssewl/optivise-installer/internal/providers/manifest"
)

// fail writes the error envelope. The message is the error text verbatim.
func (h *Handlers) fail(c *gin.Context, err error) {
	code, kind := classify(err)
	_ = c.Error(err)
	c.JSON(code, gin.H{
		"success": false,
		"kind":    kind,
		"error":   err.Error(),
	})
}

// statusClientClosedRequest is reported when the caller abandons the request
const statusClientClosedRequest = 499

// classify maps an operation error to an HTTP status and a kind label
func classify(err error) (int, string) {
	if k := lifecycle.KindOf(err); k != 0 {
		switch k {
		case lifecycle.KindPermissionDenied:
			return http.StatusForbidden, k.String()
		default:
			return http.StatusInternalServerError, k.String()
		}
	}

	if k := manifest.KindOf(err); k != 0 {
		if manifest.IsTimeout(err) {
			return http.StatusGatewayTimeout, k.String()
		}
		return http.StatusBadGateway, k.String()
	}

	if errors.Is(err, launcher.ErrNotInstalled) {
		return http.StatusNotFound, "not_installed"
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "canceled"
	}
	return http.StatusInternalServerError, "internal"
}

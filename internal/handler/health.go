package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes.  It deliberately avoids touching the
// database or Redis so a degraded dependency never flaps the process
// out of the load balancer.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

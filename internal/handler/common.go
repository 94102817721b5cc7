package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// jsonError writes the uniform error envelope used by every endpoint.
// category is a stable machine-readable string (validation_error,
// conflict, not_found, unauthorized, forbidden, config_error,
// internal_error); message is for humans.
func jsonError(c echo.Context, status int, category, message string) error {
	return c.JSON(status, echo.Map{"error": category, "message": message})
}

// getUserID extracts the authenticated user's ID placed into the
// context by the JWT middleware.  Numeric JSON claims arrive as
// float64; tokens minted by tests may carry native integers.
func getUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// itoa renders an ID for notification payloads.
func itoa(id uint64) string { return strconv.FormatUint(id, 10) }

// queryInt reads an integer query parameter with a default.
func queryInt(c echo.Context, name string, def int) int {
	s := c.QueryParam(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

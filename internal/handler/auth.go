package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Visheshvd/playarena/internal/config"
	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/repository"
	"github.com/Visheshvd/playarena/internal/utils"
)

// AuthHandler serves the OTP login flow for customers and the password
// login for admins.  OTP codes live in Redis under otp:<mobile> with a
// short TTL; if Redis is unreachable OTP login reports a configuration
// error rather than silently accepting anything.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Rdb   *redis.Client
}

func otpKey(mobile string) string { return "otp:" + mobile }

type sendOTPRequest struct {
	Mobile string `json:"mobile"`
	Name   string `json:"name"`
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile"`
	OTP    string `json:"otp"`
	Name   string `json:"name"`
}

type adminLoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type userView struct {
	ID        uint64      `json:"id"`
	Mobile    string      `json:"mobile"`
	Name      string      `json:"name"`
	Role      string      `json:"role"`
	Stats     model.Stats `json:"stats"`
	CreatedAt time.Time   `json:"created_at"`
}

func toUserView(u model.User) userView {
	return userView{ID: u.ID, Mobile: u.Mobile, Name: u.Name, Role: u.Role,
		Stats: u.Stats, CreatedAt: u.CreatedAt}
}

// SendOTP issues a login code for a mobile number.  Unknown numbers are
// registered on the fly with a placeholder name, so first login and
// registration are the same call.
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	req.Mobile = strings.TrimSpace(req.Mobile)
	if !utils.ValidMobile(req.Mobile) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "mobile must be a 10-digit number")
	}
	if h.Rdb == nil {
		return jsonError(c, http.StatusInternalServerError, "config_error", "otp store is not configured")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByMobile(ctx, req.Mobile); err == repository.ErrUserNotFound {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = "Player_" + req.Mobile[len(req.Mobile)-4:]
		}
		if _, cerr := h.Users.Create(ctx, req.Mobile, name, model.RoleCustomer); cerr != nil && cerr != repository.ErrMobileExists {
			return jsonError(c, http.StatusInternalServerError, "internal_error", "could not register user")
		}
	} else if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not look up user")
	}

	code := h.Cfg.MockOTP
	if code == "" {
		var err error
		code, err = utils.GenerateOTP(4)
		if err != nil {
			return jsonError(c, http.StatusInternalServerError, "internal_error", "could not generate otp")
		}
	}
	ttl := time.Duration(h.Cfg.OTPTTLMin) * time.Minute
	if err := h.Rdb.Set(ctx, otpKey(req.Mobile), code, ttl).Err(); err != nil {
		return jsonError(c, http.StatusInternalServerError, "config_error", "otp store unavailable")
	}

	resp := echo.Map{
		"message":        "otp sent",
		"expires_in_min": h.Cfg.OTPTTLMin,
	}
	// SMS delivery is handled out of band. In dev the code is echoed
	// back so the flow can be exercised without a provider.
	if h.Cfg.Env == "dev" {
		resp["otp"] = code
	}
	return c.JSON(http.StatusOK, resp)
}

// VerifyOTP exchanges a valid code for a signed access token.  The code
// is single use: it is deleted the moment it matches.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	req.Mobile = strings.TrimSpace(req.Mobile)
	req.OTP = strings.TrimSpace(req.OTP)
	if !utils.ValidMobile(req.Mobile) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "mobile must be a 10-digit number")
	}
	if req.OTP == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "otp is required")
	}
	if h.Rdb == nil {
		return jsonError(c, http.StatusInternalServerError, "config_error", "otp store is not configured")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stored, err := h.Rdb.Get(ctx, otpKey(req.Mobile)).Result()
	if err == redis.Nil {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "otp expired or was never requested")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "config_error", "otp store unavailable")
	}
	if stored != req.OTP {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "incorrect otp")
	}
	_ = h.Rdb.Del(ctx, otpKey(req.Mobile)).Err()

	u, err := h.Users.GetByMobile(ctx, req.Mobile)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load user")
	}
	if name := strings.TrimSpace(req.Name); name != "" && name != u.Name {
		if err := h.Users.UpdateName(ctx, u.ID, name); err == nil {
			u.Name = name
		}
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp,
		"user":       toUserView(u),
	})
}

// AdminLogin authenticates an admin with mobile + password.  Failures
// are deliberately indistinguishable.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	if req.Mobile == "" || req.Password == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "mobile and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByMobile(ctx, req.Mobile)
	if err == repository.ErrUserNotFound {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load user")
	}
	if u.Role != model.RoleAdmin || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "invalid credentials")
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      tok.Token,
		"expires_at": tok.Exp,
		"user":       toUserView(u),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err == repository.ErrUserNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "user not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load user")
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toUserView(u)})
}

// MyStats returns the caller's cumulative match statistics.
func (h *AuthHandler) MyStats(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err == repository.ErrUserNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "user not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load user")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stats":         u.Stats,
		"total_matches": u.Stats.TotalMatches(),
	})
}

// Logout is a no-op on the server: access tokens are stateless and
// simply discarded by the client.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

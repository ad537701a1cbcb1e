package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/email"
	"github.com/marwa-agamy/collegeSystem-app/internal/metrics"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/postgres"
	"github.com/marwa-agamy/collegeSystem-app/internal/repository/redisstore"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func SetupAuthRoutes(e *echo.Echo, storage *postgres.Storage, codes *redisstore.CodeStore, mailer email.Service, authMiddleware echo.MiddlewareFunc) {
	e.POST("/api/auth/login", Login(storage))
	e.POST("/api/auth/change-password", ChangePassword(storage), authMiddleware)
	e.POST("/api/auth/forgot-password", ForgotPassword(storage, codes, mailer))
	e.POST("/api/auth/reset-password", ResetPassword(storage, codes))
}

// Login godoc
// @Summary Login
// @Description Authenticate a user and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Login credentials"
// @Success 200 {object} domain.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func Login(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.LoginRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Email and password are required."})
		}

		user, err := storage.GetUserByEmail(c.Request().Context(), req.Email)
		if err != nil {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password."})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password."})
		}

		token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Could not generate token."})
		}

		storage.TouchLastLogin(c.Request().Context(), user.ID, time.Now())
		metrics.LoginAttempts.WithLabelValues("success").Inc()

		user.PasswordHash = ""
		return c.JSON(http.StatusOK, domain.AuthResponse{Token: token, User: *user})
	}
}

// ChangePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.ChangePasswordRequest true "Old and new passwords"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/change-password [post]
func ChangePassword(storage *postgres.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.ChangePasswordRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "New password must be at least 8 characters."})
		}

		user, err := currentUser(c, storage)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Unauthorized."})
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Old password is incorrect."})
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Could not hash password."})
		}

		if err := storage.UpdatePassword(c.Request().Context(), user.ID, string(hashed)); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully."})
	}
}

// ForgotPassword godoc
// @Summary Request a password reset code
// @Description Issues a one-time code and emails it to the account address
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/forgot-password [post]
func ForgotPassword(storage *postgres.Storage, codes *redisstore.CodeStore, mailer email.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.ForgotPasswordRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "A valid email is required."})
		}

		// The response never reveals whether the account exists.
		if _, err := storage.GetUserByEmail(c.Request().Context(), req.Email); err == nil {
			code, err := codes.Issue(c.Request().Context(), req.Email)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Could not issue reset code."})
			}
			if err := mailer.Send(req.Email, "Password reset code",
				"Your password reset code is "+code+". It expires shortly."); err != nil {
				c.Logger().Errorf("reset mail to %s failed: %v", req.Email, err)
			}
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "If the account exists, a reset code has been sent."})
	}
}

// ResetPassword godoc
// @Summary Reset password with a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.ResetPasswordRequest true "Email, code and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/reset-password [post]
func ResetPassword(storage *postgres.Storage, codes *redisstore.CodeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req domain.ResetPasswordRequest

		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Email, code and a new password of at least 8 characters are required."})
		}

		if err := codes.Consume(c.Request().Context(), req.Email, req.Code); err != nil {
			if errors.Is(err, redisstore.ErrCodeMismatch) {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": "Code is invalid or has expired."})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Could not verify code."})
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Could not hash password."})
		}
		if err := storage.UpdatePasswordByEmail(c.Request().Context(), req.Email, string(hashed)); err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successfully."})
	}
}

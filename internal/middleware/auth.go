package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func JWTAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Missing authorization header."})
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token."})
			}

			token := strings.Split(authHeader, " ")[1]

			claims, err := utils.ValidateToken(token)

			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token."})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// RequireRole rejects callers whose token role is not in the allowed set.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"message": "You do not have permission to perform this action."})
		}
	}
}

func RequireAdmin() echo.MiddlewareFunc   { return RequireRole(domain.RoleAdmin) }
func RequireDoctor() echo.MiddlewareFunc  { return RequireRole(domain.RoleDoctor) }
func RequireStudent() echo.MiddlewareFunc { return RequireRole(domain.RoleStudent) }

// SelfScope forces the :userId path parameter to the authenticated user's
// own id. Admins keep the id they asked for; everyone else acts on
// themselves no matter what the path says.
func SelfScope(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role != domain.RoleAdmin {
				userID, _ := c.Get("user_id").(string)
				names := c.ParamNames()
				values := c.ParamValues()
				found := false
				for i, name := range names {
					if name == param {
						values[i] = userID
						found = true
					}
				}
				if !found {
					names = append(names, param)
					values = append(values, userID)
				}
				c.SetParamNames(names...)
				c.SetParamValues(values...)
			}
			return next(c)
		}
	}
}

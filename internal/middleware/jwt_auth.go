package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const claimsKey = "user"

// JWTAuthMiddleware checks for a valid JWT and extracts user claims. The
// token comes from the Authorization header, or from the token query
// parameter for clients that cannot set headers (WebSocket upgrades).
func JWTAuthMiddleware(tokens *auth.TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := c.QueryParam("token")
			if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
				// Expecting "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
				}
				tokenString = parts[1]
			}
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// Claims returns the claims stored by JWTAuthMiddleware, or nil
func Claims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get(claimsKey).(*models.JwtCustomClaims)
	return claims
}

// UserID returns the authenticated user's id, or "" outside the middleware
func UserID(c echo.Context) string {
	if claims := Claims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

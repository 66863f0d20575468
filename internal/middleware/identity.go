package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sweetshop/internal/auth"
	"sweetshop/internal/model"
	"sweetshop/internal/repository"
)

// identityKey is the context key under which the request identity is stored.
const identityKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID   uuid.UUID
	Role string
}

// LoadUser resolves the verified token claims into a stored user and attaches
// its identity to the request. It must run after the JWT middleware.
func LoadUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(identityKey, &Identity{ID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}

// RequireAdmin rejects requests whose attached identity is not an admin.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := IdentityFrom(c)
		if identity == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		if identity.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Access denied. Admin privileges required.")
		}
		return next(c)
	}
}

// IdentityFrom returns the identity attached by LoadUser, or nil.
func IdentityFrom(c echo.Context) *Identity {
	identity, _ := c.Get(identityKey).(*Identity)
	return identity
}

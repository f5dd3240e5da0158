// Package auth resolves the already-authenticated caller. Token issuance
// lives with the external identity provider; this package only validates the
// claims the JWT middleware extracted and maps them to a local user row.
package auth

import (
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/nabnoey/TK-libralies-System/internal/clock"
	apperrors "github.com/nabnoey/TK-libralies-System/internal/errors"
	"github.com/nabnoey/TK-libralies-System/internal/model"
	"github.com/nabnoey/TK-libralies-System/internal/repository"
)

// identityKey is the echo context key holding the resolved Identity.
const identityKey = "identity"

// Identity is the authenticated caller, resolved to a local user row.
type Identity struct {
	UserID uint
	Email  string
	Name   string
	Role   string
}

// IsAdmin reports whether the caller holds the operator role.
func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// ResolveIdentity turns the validated JWT into an Identity. The local user
// row is created on first sight (first authentication) and its last-login
// timestamp refreshed; the role always comes from the local row, never from
// the token.
func ResolveIdentity(users repository.UserRepository, clk clock.Clock) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing token", Code: "UNAUTHORIZED",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "invalid token claims", Code: "UNAUTHORIZED",
				})
			}

			email, _ := claims["email"].(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "token carries no email claim", Code: "UNAUTHORIZED",
				})
			}
			name, _ := claims["name"].(string)
			avatar, _ := claims["picture"].(string)
			providerID, _ := claims["sub"].(string)

			ctx := c.Request().Context()
			user, err := users.FindByEmailOrCreate(ctx, &model.User{
				Email:      email,
				Name:       name,
				Avatar:     avatar,
				ProviderID: providerID,
				Role:       model.RoleUser,
			})
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: "identity resolution failed", Code: "INTERNAL_ERROR",
				})
			}
			if err := users.TouchLastLogin(ctx, user.ID, clk.Now()); err != nil {
				log.Printf("[auth] touch last login for user %d failed: %v", user.ID, err)
			}

			c.Set(identityKey, &Identity{
				UserID: user.ID,
				Email:  user.Email,
				Name:   user.Name,
				Role:   user.Role,
			})
			return next(c)
		}
	}
}

// CurrentIdentity returns the resolved caller, if any.
func CurrentIdentity(c echo.Context) (*Identity, bool) {
	identity, ok := c.Get(identityKey).(*Identity)
	return identity, ok
}

// RequireAdmin rejects callers without the operator role.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := CurrentIdentity(c)
			if !ok || !identity.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "operator role required", Code: "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

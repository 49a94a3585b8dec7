package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"conduit/internal/auth"
	"conduit/internal/model"
	"conduit/internal/service"
)

const (
	claimsContextKey = "token_claims"
	userContextKey   = "current_user"
)

// ResolveUser verifies the Authorization header and attaches the resolved
// user to the request context. Missing headers, bad tokens, and failed
// lookups all degrade to an anonymous request; route guards decide whether
// that blocks the call.
func ResolveUser(jwtService *auth.JWTService, users service.UserService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:Authorization:Token ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(claimsContextKey).(*auth.Claims)
			if !ok {
				return
			}
			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return
			}
			c.Set(userContextKey, user)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// verification failure is not terminal here
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// RequireUser rejects requests that did not resolve to an authenticated user.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

// CurrentUser returns the user attached by ResolveUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentUserID returns the id of the attached user.
func CurrentUserID(c echo.Context) (uint, bool) {
	user := CurrentUser(c)
	if user == nil {
		return 0, false
	}
	return user.ID, true
}

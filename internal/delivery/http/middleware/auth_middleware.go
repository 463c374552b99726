// Package middleware contains the HTTP middleware chain: authentication,
// request identification, logging and error translation.
package middleware

import (
	"net/http"

	deliverycontext "member/internal/delivery/context"
	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/service"
	"member/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Wire names for the session headers. The refresh token travels in its own
// request header; a silently reissued access token is returned in the
// Access_Token response header.
const (
	HeaderAuthorization = "Authorization"
	HeaderRefreshToken  = "Refresh_Token"
	HeaderAccessToken   = "Access_Token"
)

// AuthMiddleware validates bearer access tokens and attaches the
// authenticated principal to the request context.
type AuthMiddleware struct {
	session usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(session usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{session: session}
}

// Authenticate classifies every request exactly once:
//
//   - no bearer token, a malformed one, a bad signature, or a blacklisted
//     token: the request proceeds unauthenticated and route guards decide;
//   - live access token: the principal is attached and the request proceeds;
//   - expired access token with a valid refresh header: a new access token is
//     minted, returned in the Access_Token response header, and the request
//     proceeds authenticated;
//   - expired access token without a usable refresh token: 401 plain text;
//   - blacklist check impossible because the store is down: 503 plain text,
//     never a silent pass.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessToken, ok := service.ExtractBearer(c.Request().Header.Get(HeaderAuthorization))
		if !ok {
			return next(c)
		}

		ctx := c.Request().Context()
		claims, err := m.session.ValidateAccess(ctx, accessToken)
		switch {
		case err == nil:
			attachPrincipal(c, claims)

			return next(c)

		case errors.Is(err, domainerrors.ErrTokenExpired):
			return m.silentRefresh(c, next)

		case errors.Is(err, domainerrors.ErrStoreUnavailable):
			return c.String(http.StatusServiceUnavailable, "session store unavailable")

		default:
			// Revoked, malformed or forged tokens authenticate nothing.
			return next(c)
		}
	}
}

// silentRefresh turns an expired access token into a fresh one when the
// request carries the currently-valid refresh token.
func (m *AuthMiddleware) silentRefresh(c echo.Context, next echo.HandlerFunc) error {
	refreshToken := c.Request().Header.Get(HeaderRefreshToken)
	if refreshToken == "" {
		return c.String(http.StatusUnauthorized, "expired session")
	}

	ctx := c.Request().Context()
	output, err := m.session.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domainerrors.ErrStoreUnavailable) {
			return c.String(http.StatusServiceUnavailable, "session store unavailable")
		}

		return c.String(http.StatusUnauthorized, "expired session")
	}

	claims, err := m.session.ValidateAccess(ctx, output.AccessToken)
	if err != nil {
		if errors.Is(err, domainerrors.ErrStoreUnavailable) {
			return c.String(http.StatusServiceUnavailable, "session store unavailable")
		}

		return c.String(http.StatusUnauthorized, "expired session")
	}

	c.Response().Header().Set(HeaderAccessToken, output.AccessToken)
	attachPrincipal(c, claims)

	return next(c)
}

// RequireAuthenticated rejects requests that carry no authenticated principal.
func (m *AuthMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetPrincipal(c.Request().Context()); !ok {
			return c.String(http.StatusUnauthorized, "authentication required")
		}

		return next(c)
	}
}

// RequireRole is a middleware factory gating a route group on a role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
			if !ok {
				return c.String(http.StatusUnauthorized, "authentication required")
			}
			if !principal.HasRole(role) {
				return c.String(http.StatusForbidden, "access denied")
			}

			return next(c)
		}
	}
}

// attachPrincipal stores the caller's identity in the request context for
// guards and handlers downstream.
func attachPrincipal(c echo.Context, claims *service.Claims) {
	principal := &deliverycontext.Principal{
		Email: claims.Subject,
		Roles: entity.RolesFromStrings(claims.Roles),
	}
	ctx := deliverycontext.WithPrincipal(c.Request().Context(), principal)
	c.SetRequest(c.Request().WithContext(ctx))
}

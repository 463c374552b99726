package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "member/internal/delivery/context"
	"member/internal/domain/entity"
	domainerrors "member/internal/domain/errors"
	"member/internal/domain/service"
	mockUsecase "member/internal/mocks/usecase"
	"member/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// newTestServer wires an echo instance with the auth middleware and three
// routes: open, authenticated-only and admin-only.
func newTestServer(t *testing.T) (*echo.Echo, *mockUsecase.MockSessionUsecase) {
	session := mockUsecase.NewMockSessionUsecase(t)
	authMW := NewAuthMiddleware(session)

	e := echo.New()
	e.Use(authMW.Authenticate)

	whoami := func(c echo.Context) error {
		if principal, ok := deliverycontext.GetPrincipal(c.Request().Context()); ok {
			return c.String(http.StatusOK, principal.Email)
		}

		return c.String(http.StatusOK, "anonymous")
	}
	e.GET("/public", whoami)
	e.GET("/member/me", whoami, authMW.RequireAuthenticated)
	e.GET("/admin/stats", whoami, authMW.RequireRole(entity.RoleAdmin))

	return e, session
}

func doRequest(e *echo.Echo, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func userClaims() *service.Claims {
	return &service.Claims{
		Subject: "alice@example.com",
		Roles:   []string{"ROLE_USER"},
		Kind:    entity.TokenKindAccess,
	}
}

func TestAuthenticate_NoToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, "/public", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "live-token").Return(userClaims(), nil)

	rec := doRequest(e, "/public", map[string]string{HeaderAuthorization: "Bearer live-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", rec.Body.String())
}

func TestAuthenticate_BlacklistedTokenIsAnonymous(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "revoked-token").
		Return(nil, domainerrors.ErrTokenRevoked.WrapMessage("access token blacklisted"))

	rec := doRequest(e, "/public", map[string]string{HeaderAuthorization: "Bearer revoked-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestAuthenticate_BlacklistedTokenCannotReachGuardedRoute(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "revoked-token").
		Return(nil, domainerrors.ErrTokenRevoked.WrapMessage("access token blacklisted"))

	rec := doRequest(e, "/member/me", map[string]string{HeaderAuthorization: "Bearer revoked-token"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ForgedTokenIsAnonymous(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "forged-token").
		Return(nil, domainerrors.ErrTokenSignatureInvalid.WrapMessage("signature mismatch"))

	rec := doRequest(e, "/public", map[string]string{HeaderAuthorization: "Bearer forged-token"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestAuthenticate_SilentRefresh(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "stale-access").
		Return(nil, domainerrors.ErrTokenExpired)
	session.On("Refresh", mock.Anything, "live-refresh").
		Return(&usecase.RefreshOutput{AccessToken: "fresh-access"}, nil)
	session.On("ValidateAccess", mock.Anything, "fresh-access").Return(userClaims(), nil)

	rec := doRequest(e, "/public", map[string]string{
		HeaderAuthorization: "Bearer stale-access",
		HeaderRefreshToken:  "live-refresh",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice@example.com", rec.Body.String())
	assert.Equal(t, "fresh-access", rec.Header().Get(HeaderAccessToken))
}

func TestAuthenticate_ExpiredWithoutRefreshHeader(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "stale-access").
		Return(nil, domainerrors.ErrTokenExpired)

	rec := doRequest(e, "/public", map[string]string{HeaderAuthorization: "Bearer stale-access"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "expired session", rec.Body.String())
	assert.Empty(t, rec.Header().Get(HeaderAccessToken))
}

func TestAuthenticate_ExpiredWithBadRefreshToken(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "stale-access").
		Return(nil, domainerrors.ErrTokenExpired)
	session.On("Refresh", mock.Anything, "stale-refresh").
		Return(nil, domainerrors.ErrRefreshInvalid.WrapMessage("refresh token superseded"))

	rec := doRequest(e, "/public", map[string]string{
		HeaderAuthorization: "Bearer stale-access",
		HeaderRefreshToken:  "stale-refresh",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "expired session", rec.Body.String())
}

func TestAuthenticate_StoreOutageFailsClosed(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "live-token").
		Return(nil, domainerrors.ErrStoreUnavailable.WrapMessage("redis down"))

	rec := doRequest(e, "/public", map[string]string{HeaderAuthorization: "Bearer live-token"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "session store unavailable", rec.Body.String())
}

func TestAuthenticate_StoreOutageDuringRefreshFailsClosed(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "stale-access").
		Return(nil, domainerrors.ErrTokenExpired)
	session.On("Refresh", mock.Anything, "live-refresh").
		Return(nil, domainerrors.ErrStoreUnavailable.WrapMessage("redis down"))

	rec := doRequest(e, "/public", map[string]string{
		HeaderAuthorization: "Bearer stale-access",
		HeaderRefreshToken:  "live-refresh",
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthenticate_StoreOutageAfterRefreshFailsClosed(t *testing.T) {
	e, session := newTestServer(t)
	session.On("ValidateAccess", mock.Anything, "stale-access").
		Return(nil, domainerrors.ErrTokenExpired)
	session.On("Refresh", mock.Anything, "live-refresh").
		Return(&usecase.RefreshOutput{AccessToken: "fresh-access"}, nil)
	session.On("ValidateAccess", mock.Anything, "fresh-access").
		Return(nil, domainerrors.ErrStoreUnavailable.WrapMessage("redis down"))

	rec := doRequest(e, "/public", map[string]string{
		HeaderAuthorization: "Bearer stale-access",
		HeaderRefreshToken:  "live-refresh",
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "session store unavailable", rec.Body.String())
	assert.Empty(t, rec.Header().Get(HeaderAccessToken))
}

func TestRequireAuthenticated_Anonymous(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doRequest(e, "/member/me", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	t.Run("missing role is forbidden", func(t *testing.T) {
		e, session := newTestServer(t)
		session.On("ValidateAccess", mock.Anything, "user-token").Return(userClaims(), nil)

		rec := doRequest(e, "/admin/stats", map[string]string{HeaderAuthorization: "Bearer user-token"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "access denied", rec.Body.String())
	})

	t.Run("unauthenticated is 401 not 403", func(t *testing.T) {
		e, _ := newTestServer(t)

		rec := doRequest(e, "/admin/stats", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		e, session := newTestServer(t)
		claims := &service.Claims{
			Subject: "root@example.com",
			Roles:   []string{"ROLE_USER", "ROLE_ADMIN"},
			Kind:    entity.TokenKindAccess,
		}
		session.On("ValidateAccess", mock.Anything, "admin-token").Return(claims, nil)

		rec := doRequest(e, "/admin/stats", map[string]string{HeaderAuthorization: "Bearer admin-token"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "root@example.com", rec.Body.String())
	})
}

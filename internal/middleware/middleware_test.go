package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"game-journal/internal/model"
	"game-journal/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newAuthCtx(e *echo.Echo, header string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	auth, err := service.NewAuth("secret", time.Hour, time.Hour)
	require.NoError(t, err)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireAuth(auth)

	t.Run("missing header", func(t *testing.T) {
		err := mw(next)(newAuthCtx(e, ""))
		requireHTTPError(t, err, http.StatusUnauthorized)
	})

	t.Run("bad format", func(t *testing.T) {
		err := mw(next)(newAuthCtx(e, "Token abc"))
		requireHTTPError(t, err, http.StatusUnauthorized)
	})

	t.Run("no token part", func(t *testing.T) {
		err := mw(next)(newAuthCtx(e, "Bearer"))
		requireHTTPError(t, err, http.StatusUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		err := mw(next)(newAuthCtx(e, "Bearer not-a-jwt"))
		requireHTTPError(t, err, http.StatusUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := service.NewAuth("another", time.Hour, time.Hour)
		require.NoError(t, err)
		token, err := other.IssueAccessToken(model.User{ID: 7})
		require.NoError(t, err)

		requireHTTPError(t, mw(next)(newAuthCtx(e, "Bearer "+token)), http.StatusUnauthorized)
	})

	t.Run("valid token sets claims", func(t *testing.T) {
		token, err := auth.IssueAccessToken(model.User{ID: 7})
		require.NoError(t, err)

		ctx := newAuthCtx(e, "Bearer "+token)
		called := false
		err = mw(func(c echo.Context) error {
			called = true
			claims, ok := c.Get(ContextUserKey).(*service.Claims)
			require.True(t, ok)
			require.Equal(t, int64(7), claims.UserID)
			return c.NoContent(http.StatusOK)
		})(ctx)
		require.NoError(t, err)
		require.True(t, called)
	})

	t.Run("bearer is case insensitive", func(t *testing.T) {
		token, err := auth.IssueAccessToken(model.User{ID: 7})
		require.NoError(t, err)
		require.NoError(t, mw(next)(newAuthCtx(e, "bearer "+token)))
	})
}

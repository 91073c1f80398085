package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"game-journal/internal/cache"
	"game-journal/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restoreAuth() {
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal
	newUUID = uuid.NewString
}

func newTestAuth(t *testing.T, secret string) *Auth {
	t.Helper()
	a, err := NewAuth(secret, time.Hour, 24*time.Hour)
	require.NoError(t, err)
	return a
}

func TestNewAuth(t *testing.T) {
	_, err := NewAuth("", time.Hour, time.Hour)
	require.Error(t, err)

	a, err := NewAuth("s", time.Hour, time.Hour)
	require.NoError(t, err)
	require.NotNil(t, a)
}

func TestAccessToken(t *testing.T) {
	t.Run("issue and verify", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		token, err := a.IssueAccessToken(model.User{ID: 7})
		require.NoError(t, err)

		claims, err := a.VerifyAccessToken(token)
		require.NoError(t, err)
		require.Equal(t, int64(7), claims.UserID)
		require.Equal(t, "7", claims.Subject)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		other := newTestAuth(t, "another-secret")

		token, err := a.IssueAccessToken(model.User{ID: 7})
		require.NoError(t, err)

		_, err = other.VerifyAccessToken(token)
		require.Error(t, err)
	})

	t.Run("expired rejected", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")

		timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := a.IssueAccessToken(model.User{ID: 7})
		require.NoError(t, err)
		timeNow = time.Now

		_, err = a.VerifyAccessToken(token)
		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("payload without user id rejected", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		token, err := a.IssueAccessToken(model.User{ID: 0})
		require.NoError(t, err)

		_, err = a.VerifyAccessToken(token)
		require.EqualError(t, err, "token payload lacks user id")
	})

	t.Run("garbage rejected", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		_, err := a.VerifyAccessToken("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("unexpected signing method rejected", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")

		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 7}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = a.VerifyAccessToken(unsigned)
		require.Error(t, err)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("issue stores payload with ttl", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		newUUID = func() string { return "tok" }

		rdb := &cache.FakeCache{
			SetFn: func(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
				require.Equal(t, "refresh:tok", key)
				require.JSONEq(t, `{"user_id":7}`, string(value.([]byte)))
				require.Equal(t, 24*time.Hour, ttl)
				return redis.NewStatusResult("OK", nil)
			},
		}
		token, err := a.IssueRefreshToken(ctx, rdb, 7)
		require.NoError(t, err)
		require.Equal(t, "tok", token)
	})

	t.Run("issue marshal err", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("marshal") }
		_, err := a.IssueRefreshToken(ctx, &cache.FakeCache{}, 7)
		require.Error(t, err)
	})

	t.Run("issue set err", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		rdb := &cache.FakeCache{
			SetFn: func(_ context.Context, _ string, _ any, _ time.Duration) *redis.StatusCmd {
				return redis.NewStatusResult("", errors.New("redis down"))
			},
		}
		_, err := a.IssueRefreshToken(ctx, rdb, 7)
		require.Error(t, err)
	})

	t.Run("validate ok", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		rdb := &cache.FakeCache{
			GetFn: func(_ context.Context, key string) *redis.StringCmd {
				require.Equal(t, "refresh:tok", key)
				return redis.NewStringResult(`{"user_id":7}`, nil)
			},
		}
		userID, err := a.ValidateRefreshToken(ctx, rdb, "tok")
		require.NoError(t, err)
		require.Equal(t, int64(7), userID)
	})

	t.Run("validate unknown token", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		rdb := &cache.FakeCache{
			GetFn: func(_ context.Context, _ string) *redis.StringCmd {
				return redis.NewStringResult("", redis.Nil)
			},
		}
		_, err := a.ValidateRefreshToken(ctx, rdb, "gone")
		require.EqualError(t, err, "invalid refresh token")
	})

	t.Run("validate bad payload", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		rdb := &cache.FakeCache{
			GetFn: func(_ context.Context, _ string) *redis.StringCmd {
				return redis.NewStringResult("not-json", nil)
			},
		}
		_, err := a.ValidateRefreshToken(ctx, rdb, "tok")
		require.EqualError(t, err, "invalid refresh token")
	})

	t.Run("validate zero user id", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		rdb := &cache.FakeCache{
			GetFn: func(_ context.Context, _ string) *redis.StringCmd {
				return redis.NewStringResult(`{"user_id":0}`, nil)
			},
		}
		_, err := a.ValidateRefreshToken(ctx, rdb, "tok")
		require.EqualError(t, err, "invalid refresh token")
	})

	t.Run("revoke ok", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		rdb := &cache.FakeCache{
			DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
				require.Equal(t, []string{"refresh:tok"}, keys)
				return redis.NewIntResult(1, nil)
			},
		}
		require.NoError(t, a.RevokeRefreshToken(ctx, rdb, "tok"))
	})

	t.Run("revoke err", func(t *testing.T) {
		t.Cleanup(restoreAuth)
		a := newTestAuth(t, "secret")
		rdb := &cache.FakeCache{
			DelFn: func(_ context.Context, _ ...string) *redis.IntCmd {
				return redis.NewIntResult(0, errors.New("redis down"))
			},
		}
		require.Error(t, a.RevokeRefreshToken(ctx, rdb, "tok"))
	})
}

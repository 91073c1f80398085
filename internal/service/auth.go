package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"game-journal/internal/cache"
	"game-journal/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims 定義 JWT 負載內容
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Auth 發行與驗證令牌。簽章密鑰在建構時注入，不在執行期讀環境變數。
type Auth struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// 以下變數供測試覆寫
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
	jsonMarshal     = json.Marshal
	jsonUnmarshal   = json.Unmarshal
	newUUID         = uuid.NewString
)

// NewAuth 建立 Auth，secret 不可為空
func NewAuth(secret string, accessTTL, refreshTTL time.Duration) (*Auth, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	return &Auth{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// IssueAccessToken 依據使用者資訊產生 JWT
func (a *Auth) IssueAccessToken(user model.User) (string, error) {
	now := timeNow()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyAccessToken 驗證並解析 JWT 令牌，負載缺少使用者 ID 視同無效
func (a *Auth) VerifyAccessToken(tokenString string) (*Claims, error) {
	token, err := parseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == 0 {
		return nil, errors.New("token payload lacks user id")
	}

	return claims, nil
}

type refreshTokenData struct {
	UserID int64 `json:"user_id"`
}

func refreshKey(token string) string {
	return "refresh:" + token
}

// IssueRefreshToken 產生 refresh token 並存入 Redis，TTL 到期自動失效
func (a *Auth) IssueRefreshToken(ctx context.Context, rdb cache.Cache, userID int64) (string, error) {
	token := newUUID()
	payload, err := jsonMarshal(refreshTokenData{UserID: userID})
	if err != nil {
		return "", err
	}
	if err := rdb.Set(ctx, refreshKey(token), payload, a.refreshTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateRefreshToken 驗證 refresh token，成功回傳其使用者 ID
func (a *Auth) ValidateRefreshToken(ctx context.Context, rdb cache.Cache, token string) (int64, error) {
	payload, err := rdb.Get(ctx, refreshKey(token)).Result()
	if err != nil {
		return 0, errors.New("invalid refresh token")
	}
	var data refreshTokenData
	if err := jsonUnmarshal([]byte(payload), &data); err != nil {
		return 0, errors.New("invalid refresh token")
	}
	if data.UserID == 0 {
		return 0, errors.New("invalid refresh token")
	}
	return data.UserID, nil
}

// RevokeRefreshToken 撤銷 refresh token（登出）
func (a *Auth) RevokeRefreshToken(ctx context.Context, rdb cache.Cache, token string) error {
	return rdb.Del(ctx, refreshKey(token)).Err()
}

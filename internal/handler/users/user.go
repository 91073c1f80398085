package users

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"game-journal/internal/api"
	"game-journal/internal/cache"
	"game-journal/internal/database"
	"game-journal/internal/middleware"
	"game-journal/internal/model"
	"game-journal/internal/service"
	"game-journal/internal/store"
	"game-journal/internal/worker"

	"github.com/labstack/echo/v4"
)

// 以下變數供測試覆寫
var (
	hashPassword         = service.HashPassword
	authenticateUser     = service.AuthenticateUser
	createUser           = store.CreateUser
	getUserByID          = store.GetUserByID
	getUserByEmail       = store.GetUserByEmail
	deleteUser           = store.DeleteUser
	deleteEntriesByOwner = store.DeleteEntriesByOwner
)

// issueTokens 發行 access + refresh token
func issueTokens(c echo.Context, rdb cache.Cache, auth *service.Auth, user *model.User) (string, string, error) {
	token, err := auth.IssueAccessToken(*user)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.IssueRefreshToken(c.Request().Context(), rdb, user.ID)
	if err != nil {
		return "", "", err
	}
	return token, refresh, nil
}

// RegisterHandler 註冊新帳號
// @Summary     Register a new user
// @Description 建立帳號（Email 會自動轉小寫），成功即發行令牌
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterRequest true "註冊資料"
// @Success     201 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     409 {object} api.Response
// @Failure     500 {object} api.Response
// @Router      /users/register [post]
func RegisterHandler(db database.DB, rdb cache.Cache, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid email format"))
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to hash password"))
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				return c.JSON(http.StatusConflict, api.Error("email already registered"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("failed to create user"))
		}

		token, refresh, err := issueTokens(c, rdb, auth, user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to issue token"))
		}

		return c.JSON(http.StatusCreated, api.Success(api.AuthData{
			Token:        token,
			RefreshToken: refresh,
			User:         api.NewUserResponse(*user),
		}))
	}
}

// LoginHandler 登入
// @Summary     Log in
// @Description 驗證 Email 與密碼並發行令牌；失敗一律回傳同一訊息
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "登入資料"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     500 {object} api.Response
// @Router      /users/login [post]
func LoginHandler(db database.DB, rdb cache.Cache, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		}

		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid email or password"))
		}
		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid email or password"))
		}

		token, refresh, err := issueTokens(c, rdb, auth, user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to issue token"))
		}

		return c.JSON(http.StatusOK, api.Success(api.AuthData{
			Token:        token,
			RefreshToken: refresh,
			User:         api.NewUserResponse(*user),
		}))
	}
}

// RefreshHandler 以 refresh token 換發 access token
// @Summary     Refresh access token
// @Description 驗證 refresh token 並重新發行 access token
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.RefreshRequest true "refresh token"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     500 {object} api.Response
// @Router      /users/refresh [post]
func RefreshHandler(rdb cache.Cache, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		}

		userID, err := auth.ValidateRefreshToken(c.Request().Context(), rdb, req.RefreshToken)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid refresh token"))
		}

		token, err := auth.IssueAccessToken(model.User{ID: userID})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to issue token"))
		}

		return c.JSON(http.StatusOK, api.Success(api.TokenData{Token: token}))
	}
}

// LogoutHandler 登出並撤銷 refresh token
// @Summary     Log out
// @Description 撤銷 refresh token，access token 到期自然失效
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.RefreshRequest true "refresh token"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     500 {object} api.Response
// @Router      /users/logout [post]
func LogoutHandler(rdb cache.Cache, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		}

		if err := auth.RevokeRefreshToken(c.Request().Context(), rdb, req.RefreshToken); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to revoke token"))
		}

		return c.JSON(http.StatusOK, api.Success(api.MessageData{Message: "user logged out successfully"}))
	}
}

// GetMeHandler 取得當前使用者
// @Summary     Get current user
// @Description 透過 Bearer token 取得當前使用者資料
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     404 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.Claims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid or missing token"))
		}
		user, err := getUserByID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("user not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("failed to load user"))
		}
		return c.JSON(http.StatusOK, api.Success(api.UserData{User: api.NewUserResponse(*user)}))
	}
}

// DeleteMeHandler 刪除當前帳號並清除名下所有日誌條目。
// 條目清除交由背景工作池執行；若程序在中途終止，殘留條目
// 因 owner 已不存在而無法再被任何請求存取。
// @Summary     Delete current user
// @Description 刪除當前使用者帳號，並於背景清除其所有日誌條目
// @Tags        users
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     404 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /users/delete [delete]
func DeleteMeHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.Claims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid or missing token"))
		}

		if err := deleteUser(c.Request().Context(), db, claims.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("user not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("failed to delete user"))
		}

		ownerID := claims.UserID
		logger := c.Echo().Logger
		wp.Submit(func() {
			if err := deleteEntriesByOwner(context.Background(), db, ownerID); err != nil {
				logger.Errorf("purge entries for user %d: %v", ownerID, err)
			}
		})

		return c.JSON(http.StatusOK, api.Success(api.MessageData{Message: "user deleted successfully"}))
	}
}

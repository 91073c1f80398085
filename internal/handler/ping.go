package handler

import (
	"net/http"

	"game-journal/internal/api"
	"game-journal/internal/cache"
	"game-journal/internal/database"

	"github.com/labstack/echo/v4"
)

// PingHandler 健康檢查（需通過認證）
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("database unhealthy"))
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("cache unhealthy"))
		}
		return c.JSON(http.StatusOK, api.Success(api.MessageData{Message: "pong"}))
	}
}

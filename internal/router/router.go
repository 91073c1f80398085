package router

import (
	"github.com/labstack/echo/v4"

	"game-journal/internal/cache"
	"game-journal/internal/database"
	"game-journal/internal/handler"
	"game-journal/internal/handler/entries"
	"game-journal/internal/handler/users"
	"game-journal/internal/middleware"
	"game-journal/internal/service"
	"game-journal/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, auth *service.Auth, wp worker.Pool) {
	api := e.Group("/api")
	requireAuth := middleware.RequireAuth(auth)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), requireAuth)

	// 帳號與令牌
	apiUsers := api.Group("/users")
	apiUsers.POST("/register", users.RegisterHandler(db, rdb, auth))
	apiUsers.POST("/login", users.LoginHandler(db, rdb, auth))
	apiUsers.POST("/refresh", users.RefreshHandler(rdb, auth))
	apiUsers.POST("/logout", users.LogoutHandler(rdb, auth))
	apiUsers.GET("/me", users.GetMeHandler(db), requireAuth)
	apiUsers.DELETE("/delete", users.DeleteMeHandler(db, wp), requireAuth)

	// 日誌條目 CRUD（全部以擁有者過濾）
	apiEntries := api.Group("/journal-entries", requireAuth)
	apiEntries.GET("", entries.ListEntriesHandler(db))
	apiEntries.POST("", entries.CreateEntryHandler(db))
	apiEntries.GET("/:id", entries.GetEntryHandler(db))
	apiEntries.PATCH("/:id", entries.UpdateEntryHandler(db))
	apiEntries.DELETE("/:id", entries.DeleteEntryHandler(db))
}

package entries

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"game-journal/internal/api"
	"game-journal/internal/database"
	"game-journal/internal/middleware"
	"game-journal/internal/model"
	"game-journal/internal/pagination"
	"game-journal/internal/service"
	"game-journal/internal/store"

	"github.com/labstack/echo/v4"
)

// defaultLimit 未提供 limit 時的每頁筆數
const defaultLimit = 10

// 以下變數供測試覆寫
var (
	createEntry        = store.CreateEntry
	getEntryByID       = store.GetEntryByID
	listEntriesByOwner = store.ListEntriesByOwner
	updateEntry        = store.UpdateEntry
	deleteEntry        = store.DeleteEntry
)

func ownerClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.Claims)
	return claims, ok && claims.UserID != 0
}

// ListEntriesHandler 分頁列出當前使用者的日誌條目
// @Summary     List journal entries
// @Description 以游標分頁回傳條目，依建立時間由新到舊；nextCursor 為 null 代表已到底
// @Tags        journal-entries
// @Produce     json
// @Param       limit  query int    false "每頁筆數（預設 10）"
// @Param       cursor query string false "前一頁回傳的游標"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /journal-entries [get]
func ListEntriesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ownerClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid or missing token"))
		}

		limit := defaultLimit
		if q := c.QueryParam("limit"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n <= 0 {
				return c.JSON(http.StatusBadRequest, api.Error("limit must be a positive integer"))
			}
			limit = n
		}

		var cur *pagination.Cursor
		if q := c.QueryParam("cursor"); q != "" {
			decoded, err := pagination.Decode(q)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.Error("invalid cursor"))
			}
			cur = &decoded
		}

		items, next, err := listEntriesByOwner(c.Request().Context(), db, claims.UserID, limit, cur)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to list entries"))
		}

		entries := make([]api.EntryResponse, 0, len(items))
		for _, e := range items {
			entries = append(entries, api.NewEntryResponse(e))
		}
		var nextCursor *string
		if next != nil {
			s := next.Encode()
			nextCursor = &s
		}

		return c.JSON(http.StatusOK, api.Success(api.EntriesData{
			Entries:    entries,
			NextCursor: nextCursor,
		}))
	}
}

// GetEntryHandler 取得單一條目
// @Summary     Get a journal entry
// @Description 取得條目內容；不存在或屬於他人一律回傳 404
// @Tags        journal-entries
// @Produce     json
// @Param       id path int true "條目 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     404 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /journal-entries/{id} [get]
func GetEntryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ownerClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid or missing token"))
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid entry ID"))
		}

		entry, err := getEntryByID(c.Request().Context(), db, claims.UserID, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("entry not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("failed to load entry"))
		}

		return c.JSON(http.StatusOK, api.Success(api.EntryData{Entry: api.NewEntryResponse(*entry)}))
	}
}

// CreateEntryHandler 建立條目，擁有者一律取自驗證後的身分
// @Summary     Create a journal entry
// @Description 建立日誌條目；status 預設 started，rating 預設 5
// @Tags        journal-entries
// @Accept      json
// @Produce     json
// @Param       request body api.CreateEntryRequest true "條目內容"
// @Success     201 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /journal-entries [post]
func CreateEntryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ownerClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid or missing token"))
		}

		var req api.CreateEntryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		}

		title := strings.TrimSpace(req.Title)
		platform := strings.TrimSpace(req.Platform)
		if title == "" {
			return c.JSON(http.StatusBadRequest, api.Error("title is required and cannot be empty"))
		}
		if platform == "" {
			return c.JSON(http.StatusBadRequest, api.Error("platform is required and cannot be empty"))
		}

		status := model.StatusStarted
		if req.Status != "" {
			status = model.EntryStatus(req.Status)
		}
		rating := 5
		if req.Rating != nil {
			rating = *req.Rating
		}

		entry, err := createEntry(c.Request().Context(), db, &model.JournalEntry{
			OwnerID:  claims.UserID,
			Title:    title,
			Platform: platform,
			Status:   status,
			Rating:   rating,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.Error("failed to create entry"))
		}

		return c.JSON(http.StatusCreated, api.Success(api.EntryData{Entry: api.NewEntryResponse(*entry)}))
	}
}

// UpdateEntryHandler 部分更新條目
// @Summary     Update a journal entry
// @Description 僅更動有提供的欄位；不存在或屬於他人一律回傳 404
// @Tags        journal-entries
// @Accept      json
// @Produce     json
// @Param       id      path int                    true "條目 ID"
// @Param       request body api.UpdateEntryRequest true "要更新的欄位"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     404 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /journal-entries/{id} [patch]
func UpdateEntryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ownerClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid or missing token"))
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid entry ID"))
		}

		var req api.UpdateEntryRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid request payload"))
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.Error(err.Error()))
		}
		if req.IsEmpty() {
			return c.JSON(http.StatusBadRequest, api.Error("no fields to update"))
		}

		patch := store.EntryPatch{Rating: req.Rating}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return c.JSON(http.StatusBadRequest, api.Error("title cannot be empty"))
			}
			patch.Title = &title
		}
		if req.Platform != nil {
			platform := strings.TrimSpace(*req.Platform)
			if platform == "" {
				return c.JSON(http.StatusBadRequest, api.Error("platform cannot be empty"))
			}
			patch.Platform = &platform
		}
		if req.Status != nil {
			status := model.EntryStatus(*req.Status)
			patch.Status = &status
		}

		entry, err := updateEntry(c.Request().Context(), db, claims.UserID, id, patch)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("entry not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("failed to update entry"))
		}

		return c.JSON(http.StatusOK, api.Success(api.EntryData{Entry: api.NewEntryResponse(*entry)}))
	}
}

// DeleteEntryHandler 刪除條目
// @Summary     Delete a journal entry
// @Description 刪除條目；不存在或屬於他人一律回傳 404
// @Tags        journal-entries
// @Produce     json
// @Param       id path int true "條目 ID"
// @Success     200 {object} api.Response
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     404 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /journal-entries/{id} [delete]
func DeleteEntryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ownerClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.Error("invalid or missing token"))
		}
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.Error("invalid entry ID"))
		}

		if err := deleteEntry(c.Request().Context(), db, claims.UserID, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.Error("entry not found"))
			}
			return c.JSON(http.StatusInternalServerError, api.Error("failed to delete entry"))
		}

		return c.JSON(http.StatusOK, api.Success(api.MessageData{Message: "entry deleted successfully"}))
	}
}

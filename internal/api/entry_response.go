package api

import (
	"time"

	"game-journal/internal/model"
)

// EntryResponse 日誌條目回應，不含擁有者欄位
// swagger:model api.EntryResponse
type EntryResponse struct {
	ID        int64     `json:"id" example:"42"`
	Title     string    `json:"title" example:"Hollow Knight"`
	Platform  string    `json:"platform" example:"Switch"`
	Status    string    `json:"status" example:"completed"`
	Rating    int       `json:"rating" example:"9"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-05-02T10:00:00Z"`
}

// NewEntryResponse 將內部模型轉為傳輸物件
func NewEntryResponse(e model.JournalEntry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Title:     e.Title,
		Platform:  e.Platform,
		Status:    string(e.Status),
		Rating:    e.Rating,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// EntryData 單一條目回應內容
// swagger:model api.EntryData
type EntryData struct {
	Entry EntryResponse `json:"entry"`
}

// EntriesData 分頁列表回應內容，nextCursor 為 null 代表已到底
// swagger:model api.EntriesData
type EntriesData struct {
	Entries    []EntryResponse `json:"entries"`
	NextCursor *string         `json:"nextCursor"`
}

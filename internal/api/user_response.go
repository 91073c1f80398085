package api

import (
	"time"

	"game-journal/internal/model"
)

// UserResponse 使用者回應，永不包含密碼哈希
// swagger:model api.UserResponse
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse 將內部模型轉為傳輸物件
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// UserData 單一使用者回應內容
// swagger:model api.UserData
type UserData struct {
	User UserResponse `json:"user"`
}

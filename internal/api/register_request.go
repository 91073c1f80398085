package api

// RegisterRequest 註冊請求，密碼下限 8 碼
// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" form:"password" validate:"required,min=8" example:"Secret123!"`
}

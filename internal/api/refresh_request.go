package api

// RefreshRequest 交換或撤銷 refresh token 的請求
// swagger:model api.RefreshRequest
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token" validate:"required" example:"6f1c0f5e-..."`
}

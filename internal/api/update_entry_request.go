package api

// UpdateEntryRequest 部分更新請求，僅更動有提供的欄位；
// 全部省略視為無效請求
// swagger:model api.UpdateEntryRequest
type UpdateEntryRequest struct {
	Title    *string `json:"title" form:"title" validate:"omitempty,min=1,max=100" example:"Hollow Knight"`
	Platform *string `json:"platform" form:"platform" validate:"omitempty,min=1" example:"Steam Deck"`
	Status   *string `json:"status" form:"status" validate:"omitempty,oneof=started completed dropped paused revisited" example:"completed"`
	Rating   *int    `json:"rating" form:"rating" validate:"omitempty,gte=0,lte=10" example:"10"`
}

// IsEmpty 回報是否沒有任何欄位要更新
func (r UpdateEntryRequest) IsEmpty() bool {
	return r.Title == nil && r.Platform == nil && r.Status == nil && r.Rating == nil
}

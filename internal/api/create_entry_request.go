package api

// CreateEntryRequest 建立日誌條目請求。
// status 省略時預設 started，rating 省略時預設 5。
// swagger:model api.CreateEntryRequest
type CreateEntryRequest struct {
	Title    string `json:"title" form:"title" validate:"required,max=100" example:"Hollow Knight"`
	Platform string `json:"platform" form:"platform" validate:"required" example:"Switch"`
	Status   string `json:"status" form:"status" validate:"omitempty,oneof=started completed dropped paused revisited" example:"started"`
	Rating   *int   `json:"rating" form:"rating" validate:"omitempty,gte=0,lte=10" example:"8"`
}

package api

// Response 統一回應外層，所有端點（含錯誤）皆使用此形狀
// swagger:model api.Response
type Response struct {
	// success 或 error
	Status string `json:"status" example:"success"`
	Data   any    `json:"data"`
}

// ErrorData 錯誤回應內容，只帶可安全顯示的訊息
// swagger:model api.ErrorData
type ErrorData struct {
	Message string `json:"message" example:"entry not found"`
}

// MessageData 簡單訊息回應內容
// swagger:model api.MessageData
type MessageData struct {
	Message string `json:"message" example:"user deleted successfully"`
}

// Success 包裝成功回應
func Success(data any) Response {
	return Response{Status: "success", Data: data}
}

// Error 包裝錯誤回應
func Error(message string) Response {
	return Response{Status: "error", Data: ErrorData{Message: message}}
}

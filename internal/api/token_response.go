package api

// AuthData 註冊 / 登入成功回應內容
// swagger:model api.AuthData
type AuthData struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenData refresh 成功回應內容
// swagger:model api.TokenData
type TokenData struct {
	Token string `json:"token"`
}

package respond

// LoginRespond 用户登录响应
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

package respond

// RegisterRespond 用户注册响应
type RegisterRespond struct {
	Uuid         string `json:"uuid"`
	Username     string `json:"username"`
	Avatar       string `json:"avatar"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

package constants

const (
	// InviteCodeAlphabet 邀请码字符集
	// 剔除了易混淆字符 0/O 和 1/I，方便口头或截图分享
	InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	InviteCodeLength      = 6 // 邀请码固定长度
	InviteCodeMaxAttempts = 5 // 邀请码撞库重试上限，耗尽视为配置错误

	NeutralMood = 50  // 小组没有任何任务时的默认心情值
	MoodMax     = 100 // 心情值上限
	MoodMin     = 0   // 心情值下限

	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)

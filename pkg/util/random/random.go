package random

import (
	"crypto/rand"
	"math/big"
	"time"

	"critter_crew_server/pkg/constants"
)

// GetNowAndLenRandomString 生成带时间戳前缀的随机字符串（用于实体 UUID）
// 格式: YYMMDD + 字母数字混合
// 示例: 260901AbCdE1234567
func GetNowAndLenRandomString(length int) string {
	result := make([]byte, length)
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	charsetLen := big.NewInt(int64(len(charset)))
	for i := range result {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			result[i] = 'x'
			continue
		}
		result[i] = charset[n.Int64()]
	}
	return time.Now().Format("060102") + string(result)
}

// GetInviteCode 生成固定长度的小组邀请码
// 字符集见 constants.InviteCodeAlphabet，全部为大写字母和数字
// 唯一性由数据库 invite_code 唯一索引保证，这里只负责随机性
func GetInviteCode() string {
	result := make([]byte, constants.InviteCodeLength)
	alphabetLen := big.NewInt(int64(len(constants.InviteCodeAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			// crypto/rand 读失败极其罕见，退化为固定字符而非中断
			result[i] = constants.InviteCodeAlphabet[0]
			continue
		}
		result[i] = constants.InviteCodeAlphabet[n.Int64()]
	}
	return string(result)
}

// Package suggest 封装任务建议生成服务
// 把"一段心事文本 -> 若干条可执行任务"视作不透明的外部文本生成能力，
// Service 层依赖 SuggestionService 接口而非具体实现
package suggest

import "context"

// SuggestionService 任务建议生成接口
// 返回的每个字符串会原样作为一条任务描述入库
type SuggestionService interface {
	// SuggestTasks 根据用户输入生成建议任务列表
	// 外部调用可能较慢，也可能失败，调用方需自带超时与错误处理
	SuggestTasks(ctx context.Context, prompt string) ([]string, error)
}

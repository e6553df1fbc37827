package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"critter_crew_server/internal/config"
	"critter_crew_server/pkg/errorx"
)

const (
	geminiBaseURL  = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second
	maxSuggestions = 10
)

// taskPrompt 指示模型逐行输出任务，方便按行切分
const taskPrompt = "You are a supportive accountability coach. " +
	"Based on what the user shares, suggest 3 to 5 small, concrete, achievable tasks. " +
	"Output ONLY the tasks, one per line, no numbering, no bullets, no extra text.\n\nUser: %s"

// geminiService Gemini 文本生成实现
type geminiService struct {
	apiKey string
	model  string
	client *http.Client
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// mockSuggestionService 本地 Mock 实现
// 没有配置 API Key 时使用，便于本机跑通建群到任务完成的整条链路
type mockSuggestionService struct{}

func (s *mockSuggestionService) SuggestTasks(ctx context.Context, prompt string) ([]string, error) {
	fmt.Printf("【MockSuggest】输入: %s\n", prompt)
	return []string{
		"Take a 10 minute walk outside",
		"Write down three things you are grateful for",
		"Drink a glass of water",
		"Message a friend you have not talked to this week",
	}, nil
}

// Init 根据配置创建任务建议生成服务实例
// apiKey 为空时走本地 Mock
func Init() SuggestionService {
	conf := config.GetConfig().SuggestConfig
	apiKey := strings.TrimSpace(conf.ApiKey)
	if apiKey == "" {
		zap.L().Warn("Suggest Service 使用本地 Mock 模式（不调用第三方文本生成接口）")
		return &mockSuggestionService{}
	}

	model := conf.Model
	if model == "" {
		model = defaultModel
	}
	timeout := defaultTimeout
	if conf.Timeout > 0 {
		timeout = time.Duration(conf.Timeout) * time.Second
	}

	return &geminiService{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

// SuggestTasks 调用 Gemini 生成任务建议
// 任何传输层或响应格式问题都以 CodeDependency 上抛，不做内部重试
func (s *geminiService) SuggestTasks(ctx context.Context, prompt string) ([]string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(taskPrompt, prompt)}}},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeDependency, "序列化建议生成请求失败")
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeDependency, "构造建议生成请求失败")
	}
	req.Header.Set("Content-Type", "application/json")

	rsp, err := s.client.Do(req)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeDependency, "任务建议服务不可用")
	}
	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeDependency, "读取建议生成响应失败")
	}
	if rsp.StatusCode != http.StatusOK {
		zap.L().Error("Gemini API 返回非 200", zap.Int("status", rsp.StatusCode), zap.ByteString("body", body))
		return nil, errorx.Newf(errorx.CodeDependency, "任务建议服务返回状态码 %d", rsp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errorx.Wrap(err, errorx.CodeDependency, "解析建议生成响应失败")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, errorx.New(errorx.CodeDependency, "任务建议服务返回空结果")
	}

	return splitSuggestions(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// listMarkerPattern 只匹配行首的列表标记（"- "、"* "、"1. "、"2) "）
// 不能用字符集合去 TrimLeft，那会吃掉 "10 minute walk" 这种以数字开头的正文
var listMarkerPattern = regexp.MustCompile(`^([-*]|\d+[.)])\s+`)

// splitSuggestions 按行切分模型输出
// 模型偶尔不守规矩带上编号或短横线，这里做最小限度的清理，其余内容原样保留
func splitSuggestions(text string) []string {
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = listMarkerPattern.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		result = append(result, line)
		if len(result) >= maxSuggestions {
			break
		}
	}
	return result
}

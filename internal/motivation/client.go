package motivation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SlpAus/questify-backend/internal/platform/config"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// errNoAPIKey 表示未配置API密钥，调用方应直接走兜底文案。
var errNoAPIKey = errors.New("未配置GEMINI_API_KEY")

// prompts 是类型到提示词模板的映射，上下文字段在buildPrompt中填充。
var prompts = map[Kind]string{
	KindCompletion:     "为完成一个「%s」类目标的用户生成一句简短、热情的中文祝贺语，只返回这句话本身。",
	KindNudge:          "为催促朋友完成「%s」类别下的目标「%s」生成一句友善、有干劲的中文鼓励语，只返回这句话本身。",
	KindFailureAlert:   "为一个「%s」类目标进度落后的用户生成一句有同理心但振奋人心的中文提醒语，只返回这句话本身。",
	KindDashboardQuote: "生成一句关于达成目标与自我提升的中文励志格言，有力且好记，只返回这句话本身。",
	KindBadgeUnlock:    "为解锁成就「%s」生成一句兴奋的中文庆祝语，只返回这句话本身。",
}

func buildPrompt(kind Kind, ctx Context) string {
	goalType := ctx["goal_type"]
	if goalType == "" {
		goalType = "个人"
	}
	switch kind {
	case KindCompletion, KindFailureAlert:
		return fmt.Sprintf(prompts[kind], goalType)
	case KindNudge:
		title := ctx["goal_title"]
		if title == "" {
			title = "目标"
		}
		return fmt.Sprintf(prompts[kind], goalType, title)
	case KindBadgeUnlock:
		return fmt.Sprintf(prompts[kind], ctx["badge_name"])
	default:
		return prompts[KindDashboardQuote]
	}
}

// Gemini generateContent 的请求/响应结构，只保留用到的字段。
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
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// callGemini 向Gemini发起一次文案生成请求。
// 超时由http.Client控制（配置中的timeoutSeconds，默认10秒）。
func callGemini(cfg config.GeminiConfig, prompt string) (string, error) {
	apiKey := cfg.APIKey()
	if apiKey == "" {
		return "", errNoAPIKey
	}

	reqBody, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("序列化Gemini请求失败: %w", err)
	}

	client := &http.Client{Timeout: cfg.Timeout()}
	url := fmt.Sprintf(geminiEndpoint, cfg.Model, apiKey)
	resp, err := client.Post(url, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("调用Gemini失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini返回状态码 %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("解析Gemini响应失败: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("Gemini响应为空")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	text = strings.Trim(text, "\"'*")
	if text == "" {
		return "", errors.New("Gemini响应为空")
	}
	return text, nil
}

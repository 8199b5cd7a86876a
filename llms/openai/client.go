package openai

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// 可用模型，依 Home Assistant 的 intelligence_level 決定
const (
	ModelHigh   = "gpt-5-mini"
	ModelMedium = "gpt-5-nano"
	ModelLow    = "gpt-4o-mini"
)

// Message 符合 OpenAI chat completions 的訊息格式
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options 定義送給 OpenAI 的模型參數
type Options struct {
	Verbosity string
	MaxTokens int
}

// ChatRequest 定義發送至 /v1/chat/completions 的資料結構
type ChatRequest struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	Verbosity           string    `json:"verbosity,omitempty"`
	MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
}

// ChatResponse 是 /v1/chat/completions 的回覆格式 (只取需要的欄位)
type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// SelectModel 依 intelligence_level 挑選模型與 verbosity
// gpt-5 系列接受 low，gpt-4o-mini 不接受所以改用 medium
func SelectModel(intelligenceLevel string) (model, verbosity string) {
	switch intelligenceLevel {
	case "High":
		return ModelHigh, "low"
	case "Medium":
		return ModelMedium, "low"
	default:
		return ModelLow, "medium"
	}
}

// Chat 發送對話請求並回傳 assistant 訊息
// 金鑰從 OPENAI_API_KEY 讀取，位址可用 OPENAI_BASE_URL 覆寫 (測試用)
func Chat(modelName string, messages []Message, opts Options) (Message, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return Message{}, fmt.Errorf("OPENAI_API_KEY 環境變數不存在，需要 OpenAI API Key 才能執行")
	}

	baseURL := os.Getenv("OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	reqBody := ChatRequest{
		Model:               modelName,
		Messages:            messages,
		Verbosity:           opts.Verbosity,
		MaxCompletionTokens: opts.MaxTokens,
	}

	var result ChatResponse
	resp, err := resty.New().
		SetTimeout(120 * time.Second).
		R().
		SetAuthToken(apiKey).
		SetBody(reqBody).
		SetResult(&result).
		SetError(&result).
		Post(baseURL + "/v1/chat/completions")

	if err != nil {
		return Message{}, fmt.Errorf("連接 OpenAI 服務失敗: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil {
			return Message{}, fmt.Errorf("OpenAI HTTP %d: %s", resp.StatusCode(), result.Error.Message)
		}
		return Message{}, fmt.Errorf("OpenAI HTTP %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Choices) == 0 {
		return Message{}, fmt.Errorf("OpenAI 回覆中沒有任何 choices")
	}
	return result.Choices[0].Message, nil
}

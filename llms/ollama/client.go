package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Options 定義模型參數，用於調整 AI 的行為風格
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
}

// Message 代表對話中的一則訊息（符合 Ollama /api/chat 標準）
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatRequest 定義發送至 /api/chat 的資料結構
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  Options   `json:"options,omitempty"`
}

// ChatResponse 是非串流模式下 /api/chat 的完整回覆
type ChatResponse struct {
	Model     string  `json:"model"`
	CreatedAt string  `json:"created_at"`
	Message   Message `json:"message"`
	Done      bool    `json:"done"`
}

// Host 回傳 Ollama 位址，可透過環境變數覆寫
func Host() string {
	url := os.Getenv("OLLAMA_HOST")
	if url == "" {
		url = "http://localhost:11434"
	}
	return strings.TrimSuffix(url, "/")
}

// Chat 發送請求並回傳完整的 Assistant Message
// 一次性問答不需要串流，直接等完整回覆
func Chat(modelName string, messages []Message, opts Options) (Message, error) {
	reqBody := ChatRequest{
		Model:    modelName,
		Messages: messages,
		Stream:   false,
		Options:  opts,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Message{}, fmt.Errorf("JSON 解析失敗: %v", err)
	}

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Post(Host()+"/api/chat", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return Message{}, fmt.Errorf("連接 Ollama 服務失敗: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorResp map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResp)
		return Message{}, fmt.Errorf("Ollama HTTP %d: %v", resp.StatusCode, errorResp["error"])
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return Message{}, fmt.Errorf("解析 Ollama 回覆失敗: %v", err)
	}
	return chatResp.Message, nil
}

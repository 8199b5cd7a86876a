package llms

// Message 代表對話中的一則訊息
type Message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// Options 定義模型參數，用於調整 AI 的行為風格
type Options struct {
	Verbosity       string  `json:"verbosity,omitempty"` // low, medium (gpt-5 系列支援 low)
	ReasoningEffort string  `json:"reasoning_effort,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	MaxTokens       int     `json:"max_tokens,omitempty"`
}

// ChatFunc 定義了通用的 LLM 聊天函式簽名
type ChatFunc func(modelName string, messages []Message, opts Options) (Message, error)

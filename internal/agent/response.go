package agent

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/cbcode4007/ai-hagpt/internal/homeassistant"
)

// 分類結果：AI 回覆不是指令就是閒聊
const (
	KindCommand = "command"
	KindChat    = "chat"
)

var (
	fenceOpenRe  = regexp.MustCompile("^```[a-zA-Z]*\n?")
	fenceCloseRe = regexp.MustCompile("\n?```$")
)

// ParsedResponse 是 AI 回覆解析後的結構
// Service 為空代表閒聊，只需要把 ResponseText 呈現給使用者
type ParsedResponse struct {
	Service      string                 `json:"service"`
	Target       homeassistant.Target   `json:"target"`
	Variables    map[string]interface{} `json:"variables"`
	Data         map[string]interface{} `json:"data"`
	ResponseText string                 `json:"response_text"`
}

// Kind 回傳分類結果
func (p *ParsedResponse) Kind() string {
	if p.Service != "" {
		return KindCommand
	}
	return KindChat
}

// CleanAIResponse 清掉 markdown 圍欄並解析 JSON 信封
// 解析失敗時整段文字當成閒聊回覆 (AI 偶爾會直接回純文字)
func CleanAIResponse(raw string) *ParsedResponse {
	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpenRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(fenceCloseRe.ReplaceAllString(cleaned, ""))

	var p ParsedResponse
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return &ParsedResponse{ResponseText: cleaned}
	}
	if p.Variables == nil {
		p.Variables = map[string]interface{}{}
	}
	if p.Data == nil {
		p.Data = map[string]interface{}{}
	}
	return &p
}

package agent

import (
	"fmt"
	"time"

	"github.com/cbcode4007/ai-hagpt/internal/history"
	"github.com/cbcode4007/ai-hagpt/internal/homeassistant"
	"github.com/cbcode4007/ai-hagpt/llms"
)

// HomeControl 是 Agent 對家庭自動化的最小依賴 (由 homeassistant.Client 實作)
type HomeControl interface {
	CallService(service string, target homeassistant.Target, data, variables map[string]interface{}) string
	EntitySnapshot(entitiesFile string) (*homeassistant.Snapshot, error)
}

// Result 是一次問答的完整結果
type Result struct {
	Kind         string // command 或 chat
	Service      string // 被呼叫的 HA 服務 (chat 時為空)
	HAResult     string // HA 回傳結果字串
	ResponseText string // 給使用者看的回覆
	RawReply     string // AI 的原始回覆
}

// Recorder 落盤一次互動 (由 database.DB 實作)，nil 表示不落盤
type Recorder interface {
	Record(query, kind, service, haResult, response, rawReply string)
}

// Agent 封裝了一次性問答的流程：快照 -> AI -> 分類 -> 派送
type Agent struct {
	Provider     llms.ChatFunc
	HA           HomeControl
	History      *history.Manager
	Logger       *SystemLogger
	Recorder     Recorder
	SystemPrompt string
	EntitiesFile string
	ModelName    string
	Options      llms.Options

	// 給 AI 的補充脈絡，不適合塞進 system prompt
	PrefNames  string // 合法偏好名稱清單
	ActivePref string // 目前生效的偏好內容

	// Callbacks for UI interaction
	OnGenerateStart func()
	OnModelSelected func(model string)
	OnCommandResult func(service, result string)
}

// contextBlock 組出目前日期時間、實體狀態、偏好等補充資訊
// 這些資料 AI 不預期出現在 prompt 裡，因此放在獨立的 user 訊息
func (a *Agent) contextBlock(snapshot string) string {
	now := time.Now()
	block := fmt.Sprintf("Current Date: %s  Current Time: %s ., ",
		now.Format("Monday, Jan 02, 2006"), now.Format("3:04 PM"))
	block += fmt.Sprintf("Entity list and their current States: %s, ", snapshot)
	block += a.PrefNames + "., "
	if a.ActivePref != "" {
		block += fmt.Sprintf("Active -> %s ", a.ActivePref)
	}
	return block
}

// Ask 處理一次使用者輸入，回傳分類與回覆
func (a *Agent) Ask(input string) (*Result, error) {
	a.Logger.Info(EventUserInput, input)

	// 載入允許清單內的實體狀態，之後依 intelligence_level 換模型
	snap, err := a.HA.EntitySnapshot(a.EntitiesFile)
	if err != nil {
		a.Logger.Error("entity snapshot failed", err)
		return nil, err
	}
	a.Logger.Debug(EventSnapshot, snap.Text)

	if snap.IntelligenceLevel != "" && a.OnModelSelected != nil {
		a.OnModelSelected(snap.IntelligenceLevel)
	}
	a.Logger.Debug(EventModelSelect,
		fmt.Sprintf("model=%s verbosity=%s", a.ModelName, a.Options.Verbosity))

	messages := []llms.Message{{Role: "system", Content: a.SystemPrompt}}
	for _, e := range a.History.Entries {
		messages = append(messages, llms.Message{Role: e.Role, Content: e.Content})
	}
	messages = append(messages,
		llms.Message{Role: "user", Content: a.contextBlock(snap.Text)},
		llms.Message{Role: "user", Content: input},
	)

	if a.OnGenerateStart != nil {
		a.OnGenerateStart()
	}
	if a.Provider == nil {
		return nil, fmt.Errorf("Agent Provider 未設定")
	}

	aiMsg, err := a.Provider(a.ModelName, messages, a.Options)
	if err != nil {
		a.Logger.Error("provider call failed", err)
		return nil, fmt.Errorf("AI 思考錯誤: %w", err)
	}
	a.Logger.Info(EventAIResponse, aiMsg.Content)

	parsed := CleanAIResponse(aiMsg.Content)
	result := &Result{
		Kind:         parsed.Kind(),
		Service:      parsed.Service,
		ResponseText: parsed.ResponseText,
		RawReply:     aiMsg.Content,
	}

	if result.Kind == KindCommand {
		result.HAResult = a.HA.CallService(parsed.Service, parsed.Target, parsed.Data, parsed.Variables)
		a.Logger.HACall(parsed.Service, result.HAResult)
		if a.OnCommandResult != nil {
			a.OnCommandResult(parsed.Service, result.HAResult)
		}
	}

	// 只在整條流程走完後寫歷史，失敗時 user/assistant 不會脫鉤
	// 歷史保留乾淨的 response_text 而不是整包 JSON，對話脈絡才有用
	a.History.AppendTurn(input, result.ResponseText)
	if err := a.History.Save(); err != nil {
		a.Logger.Error("history save failed", err)
	}

	if a.Recorder != nil {
		a.Recorder.Record(input, result.Kind, result.Service, result.HAResult,
			result.ResponseText, result.RawReply)
	}
	return result, nil
}

package agent

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/cbcode4007/ai-hagpt/internal/history"
	"github.com/cbcode4007/ai-hagpt/internal/homeassistant"
	"github.com/cbcode4007/ai-hagpt/llms"
)

// mockHome 記錄 CallService 呼叫，EntitySnapshot 回傳固定快照
type mockHome struct {
	snapshot     *homeassistant.Snapshot
	calledSvc    string
	calledTarget homeassistant.Target
	result       string
}

func (m *mockHome) CallService(service string, target homeassistant.Target, data, variables map[string]interface{}) string {
	m.calledSvc = service
	m.calledTarget = target
	return m.result
}

func (m *mockHome) EntitySnapshot(string) (*homeassistant.Snapshot, error) {
	return m.snapshot, nil
}

type mockRecorder struct {
	kind    string
	service string
}

func (m *mockRecorder) Record(query, kind, service, haResult, response, rawReply string) {
	m.kind = kind
	m.service = service
}

func newTestAgent(t *testing.T, provider llms.ChatFunc, home *mockHome) (*Agent, *history.Manager) {
	t.Helper()
	hist, err := history.Load(filepath.Join(t.TempDir(), "history.json"), 10)
	if err != nil {
		t.Fatalf("history.Load failed: %v", err)
	}
	return &Agent{
		Provider:     provider,
		HA:           home,
		History:      hist,
		SystemPrompt: "system prompt",
		ModelName:    "mock-model",
		PrefNames:    "Valid Preference Names (formal, casual)",
		ActivePref:   "回覆請簡短",
	}, hist
}

func TestAskDispatchesCommand(t *testing.T) {
	home := &mockHome{
		snapshot: &homeassistant.Snapshot{Text: "switch.fan (Fan) state:off"},
		result:   "200: OK",
	}
	provider := func(model string, messages []llms.Message, opts llms.Options) (llms.Message, error) {
		return llms.Message{
			Role:    "assistant",
			Content: `{"service":"switch.turn_on","target":{"entity_id":"switch.fan"},"response_text":"風扇已打開。"}`,
		}, nil
	}

	a, hist := newTestAgent(t, provider, home)
	res, err := a.Ask("把風扇打開")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if res.Kind != KindCommand {
		t.Errorf("Expected command classification, got %q", res.Kind)
	}
	if home.calledSvc != "switch.turn_on" {
		t.Errorf("Expected switch.turn_on dispatched, got %q", home.calledSvc)
	}
	if home.calledTarget.EntityID != "switch.fan" {
		t.Errorf("Expected target switch.fan, got %q", home.calledTarget.EntityID)
	}
	if res.HAResult != "200: OK" {
		t.Errorf("Expected HA result '200: OK', got %q", res.HAResult)
	}
	// 歷史應該存乾淨的 response_text 而不是整包 JSON
	if len(hist.Entries) != 2 {
		t.Fatalf("Expected one turn (2 entries) in history, got %d", len(hist.Entries))
	}
	if strings.Contains(hist.Entries[1].Content, `"service"`) {
		t.Errorf("History should not contain the raw JSON envelope: %q", hist.Entries[1].Content)
	}
	if !strings.Contains(hist.Entries[1].Content, "風扇已打開。") {
		t.Errorf("History assistant entry should contain the response text: %q", hist.Entries[1].Content)
	}
}

func TestAskChatSkipsDispatch(t *testing.T) {
	home := &mockHome{snapshot: &homeassistant.Snapshot{Text: ""}}
	provider := func(model string, messages []llms.Message, opts llms.Options) (llms.Message, error) {
		return llms.Message{Role: "assistant", Content: `{"response_text":"哈囉！"}`}, nil
	}

	a, _ := newTestAgent(t, provider, home)
	rec := &mockRecorder{}
	a.Recorder = rec

	res, err := a.Ask("你好")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if res.Kind != KindChat {
		t.Errorf("Expected chat classification, got %q", res.Kind)
	}
	if home.calledSvc != "" {
		t.Errorf("Chat should not dispatch a service, but called %q", home.calledSvc)
	}
	if rec.kind != KindChat {
		t.Errorf("Recorder should receive chat kind, got %q", rec.kind)
	}
}

func TestAskModelSelectionCallback(t *testing.T) {
	home := &mockHome{
		snapshot: &homeassistant.Snapshot{
			Text:              "input_select.intelligence_level (Intelligence Level) state:High",
			IntelligenceLevel: "High",
		},
	}
	provider := func(model string, messages []llms.Message, opts llms.Options) (llms.Message, error) {
		return llms.Message{Role: "assistant", Content: `{"response_text":"ok"}`}, nil
	}

	a, _ := newTestAgent(t, provider, home)
	var selected string
	a.OnModelSelected = func(level string) { selected = level }

	if _, err := a.Ask("hello"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if selected != "High" {
		t.Errorf("Expected OnModelSelected with 'High', got %q", selected)
	}
}

func TestAskContextBlockReachesProvider(t *testing.T) {
	home := &mockHome{snapshot: &homeassistant.Snapshot{Text: "light.desk (Desk) state:on"}}

	var got []llms.Message
	provider := func(model string, messages []llms.Message, opts llms.Options) (llms.Message, error) {
		got = messages
		return llms.Message{Role: "assistant", Content: `{"response_text":"ok"}`}, nil
	}

	a, _ := newTestAgent(t, provider, home)
	if _, err := a.Ask("桌燈是開的嗎"); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	// system + 脈絡 + 使用者輸入，共三則 (沒有歷史)
	if len(got) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(got))
	}
	ctx := got[1].Content
	if !strings.Contains(ctx, "light.desk (Desk) state:on") {
		t.Errorf("Context block missing entity snapshot: %q", ctx)
	}
	if !strings.Contains(ctx, "Valid Preference Names") {
		t.Errorf("Context block missing preference names: %q", ctx)
	}
	if !strings.Contains(ctx, "Active -> 回覆請簡短") {
		t.Errorf("Context block missing active preference: %q", ctx)
	}
	if !strings.Contains(ctx, "Current Date:") || !strings.Contains(ctx, "Current Time:") {
		t.Errorf("Context block missing date/time: %q", ctx)
	}
}

func TestAskProviderErrorKeepsHistoryInSync(t *testing.T) {
	home := &mockHome{snapshot: &homeassistant.Snapshot{Text: ""}}
	provider := func(model string, messages []llms.Message, opts llms.Options) (llms.Message, error) {
		return llms.Message{}, errTest
	}

	a, hist := newTestAgent(t, provider, home)
	if _, err := a.Ask("hello"); err == nil {
		t.Fatal("Expected error from provider")
	}
	if len(hist.Entries) != 0 {
		t.Errorf("Failed turn must not be written to history, got %d entries", len(hist.Entries))
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "provider unavailable" }

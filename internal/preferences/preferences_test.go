package preferences

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `ha_url: http://homeassistant.local:8123
base_url: http://192.168.1.50:8080
entities_file: entities.txt
prompts_file: prompts.yaml
log_mode: info
default_preference: formal
user_prefs:
  formal: 回覆請使用正式語氣。
  casual: 回覆請輕鬆一點。
`

func writePrefs(t *testing.T) *Preferences {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hagpt.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNewMissingFile(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("Expected error for missing preferences file")
	}
}

func TestGetAndDefaults(t *testing.T) {
	p := writePrefs(t)
	if got := p.Get(KeyHAURL); got != "http://homeassistant.local:8123" {
		t.Errorf("ha_url = %q", got)
	}
	// 檔案沒寫的鍵要有預設值
	if got := p.GetInt(KeyHistoryWindow); got != 20 {
		t.Errorf("history_window default = %d, want 20", got)
	}
	if got := p.Get(KeyLogFile); got != "hagpt.log" {
		t.Errorf("log_file default = %q", got)
	}
}

func TestSetPersists(t *testing.T) {
	p := writePrefs(t)
	if err := p.Set(KeyLogMode, "debug"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// 重新載入驗證有寫回檔案
	p2, err := New(p.Path())
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := p2.Get(KeyLogMode); got != "debug" {
		t.Errorf("log_mode after reload = %q, want debug", got)
	}
}

func TestValidPreferenceNames(t *testing.T) {
	p := writePrefs(t)
	names := p.ValidPreferenceNames()
	if !strings.HasPrefix(names, "Valid Preference Names (") || !strings.HasSuffix(names, ")") {
		t.Errorf("Unexpected format: %q", names)
	}
	if !strings.Contains(names, "casual") || !strings.Contains(names, "formal") {
		t.Errorf("Missing preference names: %q", names)
	}
}

func TestActivePreference(t *testing.T) {
	p := writePrefs(t)
	if got := p.ActivePreference(); got != "回覆請使用正式語氣。" {
		t.Errorf("ActivePreference = %q", got)
	}

	if err := p.Set(KeyDefaultPreference, "casual"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := p.ActivePreference(); got != "回覆請輕鬆一點。" {
		t.Errorf("ActivePreference after switch = %q", got)
	}
}

func TestActivePreferenceNoDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hagpt.yaml")
	if err := os.WriteFile(path, []byte("ha_url: http://x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := p.ActivePreference(); got != "" {
		t.Errorf("Expected empty active preference, got %q", got)
	}
}

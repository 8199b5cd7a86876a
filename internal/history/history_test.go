package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "none.json"), 10)
	if err != nil {
		t.Fatalf("Missing file should not be an error, got: %v", err)
	}
	if len(m.Entries) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(m.Entries))
	}
}

func TestAppendTurnStampsBothSides(t *testing.T) {
	m := &Manager{Path: filepath.Join(t.TempDir(), "h.json"), Window: 10}
	m.AppendTurn("開燈", "已打開。")

	if len(m.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(m.Entries))
	}
	if m.Entries[0].Role != "user" || m.Entries[1].Role != "assistant" {
		t.Errorf("Unexpected roles: %s / %s", m.Entries[0].Role, m.Entries[1].Role)
	}
	// 兩邊使用同一個時間戳記前綴
	uStamp := m.Entries[0].Content[:21]
	aStamp := m.Entries[1].Content[:21]
	if uStamp != aStamp {
		t.Errorf("Turn halves should share a stamp: %q vs %q", uStamp, aStamp)
	}
	if !strings.HasPrefix(m.Entries[0].Content, "[") {
		t.Errorf("Content should carry a [timestamp] prefix: %q", m.Entries[0].Content)
	}
}

func TestSaveTrimsToWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.json")
	m := &Manager{Path: path, Window: 2}
	for i := 0; i < 5; i++ {
		m.AppendTurn("q", "a")
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if len(m.Entries) != 4 {
		t.Errorf("Window=2 should keep 4 entries, got %d", len(m.Entries))
	}

	// 重新載入應該讀到裁剪後的結果
	m2, err := Load(path, 2)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(m2.Entries) != 4 {
		t.Errorf("Reloaded history should have 4 entries, got %d", len(m2.Entries))
	}
}

func TestResetTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.json")
	m := &Manager{Path: path, Window: 10}
	m.AppendTurn("q", "a")
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	m2, err := Load(path, 10)
	if err != nil {
		t.Fatalf("Load after reset failed: %v", err)
	}
	if len(m2.Entries) != 0 {
		t.Errorf("Expected empty history after reset, got %d entries", len(m2.Entries))
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path, 10)
	if err != nil {
		t.Fatalf("Corrupt file should not abort, got: %v", err)
	}
	if len(m.Entries) != 0 {
		t.Errorf("Corrupt file should yield empty history, got %d entries", len(m.Entries))
	}
}

func TestTranscript(t *testing.T) {
	m := &Manager{}
	m.AppendTurn("開燈", "已打開。")
	ts := m.Transcript()
	if !strings.Contains(ts, "user:") || !strings.Contains(ts, "assistant:") {
		t.Errorf("Transcript missing roles: %q", ts)
	}
}

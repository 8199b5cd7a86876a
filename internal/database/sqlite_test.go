package database

import (
	"path/filepath"
	"testing"
)

func TestRecordAndRecent(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "hagpt.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer db.Close()

	db.Record("把風扇打開", "command", "switch.turn_on", "200: OK", "風扇已打開。", `{"service":"switch.turn_on"}`)
	db.Record("你好", "chat", "", "", "哈囉！", `{"response_text":"哈囉！"}`)

	recent, err := db.RecentInteractions(10)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 interactions, got %d", len(recent))
	}

	// 最新的排前面
	if recent[0].Kind != "chat" || recent[1].Kind != "command" {
		t.Errorf("Unexpected order: %s, %s", recent[0].Kind, recent[1].Kind)
	}
	if recent[1].Service != "switch.turn_on" {
		t.Errorf("Service not persisted: %q", recent[1].Service)
	}
	if recent[1].HAResult != "200: OK" {
		t.Errorf("HA result not persisted: %q", recent[1].HAResult)
	}
}

func TestNewSQLiteMigrateFailure(t *testing.T) {
	// 路徑是目錄時 migrate 會失敗，錯誤分支要把連線關掉再回傳
	if _, err := NewSQLite(t.TempDir()); err == nil {
		t.Fatal("Expected error when the database path is a directory")
	}
}

func TestRecentLimit(t *testing.T) {
	db, err := NewSQLite(filepath.Join(t.TempDir(), "hagpt.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer db.Close()

	for i := 0; i < 5; i++ {
		db.Record("q", "chat", "", "", "a", "")
	}
	recent, err := db.RecentInteractions(3)
	if err != nil {
		t.Fatalf("RecentInteractions failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected limit of 3, got %d", len(recent))
	}
}

package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite" // 無 CGO 版本驅動
)

type DB struct {
	*sql.DB
}

// NewSQLite 初始化並建立資料庫連線
func NewSQLite(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// 設定連線池，避免 SQLite 併發寫入衝突
	db.SetMaxOpenConns(1)

	instance := &DB{db}
	if err := instance.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return instance, nil
}

// migrate 負責建立必要的表格
func (db *DB) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS interactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,         -- 使用者輸入
		kind TEXT NOT NULL,          -- command 或 chat
		service TEXT,                -- 被呼叫的 HA 服務 (chat 時為空)
		ha_result TEXT,              -- HA 回傳結果字串
		response TEXT,               -- 給使用者看的回覆
		raw_reply TEXT,              -- AI 的原始 JSON 回覆（備份用）
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to run migration: %w", err)
	}
	return nil
}

// Interaction 是一次完整問答的落盤紀錄
type Interaction struct {
	Query    string
	Kind     string
	Service  string
	HAResult string
	Response string
	RawReply string
}

// RecordInteraction 寫入一筆互動紀錄，失敗僅記錄不中斷主流程
func (db *DB) RecordInteraction(in Interaction) {
	_, err := db.Exec(
		`INSERT INTO interactions (query, kind, service, ha_result, response, raw_reply)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.Query, in.Kind, in.Service, in.HAResult, in.Response, in.RawReply,
	)
	if err != nil {
		log.Printf("⚠️ [Database] 互動紀錄寫入失敗: %v", err)
	}
}

// Record 實作 agent.Recorder
func (db *DB) Record(query, kind, service, haResult, response, rawReply string) {
	db.RecordInteraction(Interaction{
		Query: query, Kind: kind, Service: service,
		HAResult: haResult, Response: response, RawReply: rawReply,
	})
}

// RecentInteractions 取出最近 n 筆互動 (health/除錯用)
func (db *DB) RecentInteractions(n int) ([]Interaction, error) {
	rows, err := db.Query(
		`SELECT query, kind, COALESCE(service,''), COALESCE(ha_result,''),
		        COALESCE(response,''), COALESCE(raw_reply,'')
		 FROM interactions ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var in Interaction
		if err := rows.Scan(&in.Query, &in.Kind, &in.Service, &in.HAResult, &in.Response, &in.RawReply); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

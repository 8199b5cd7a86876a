package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry 代表對話紀錄中的一則訊息
// Stamp 與 Content 前綴的 [日期時間] 重複，但保留結構化欄位方便排序與匯出
type Entry struct {
	Role    string    `json:"role"` // user, assistant
	Content string    `json:"content"`
	Stamp   time.Time `json:"stamp"`
}

// Manager 負責讀寫對話歷史檔案
// Window 表示儲存時保留的最大輪數 (一輪 = user + assistant 兩則)
type Manager struct {
	Path    string
	Window  int
	Entries []Entry
}

// Load 載入對話歷史，檔案不存在時回傳空歷史
func Load(path string, window int) (*Manager, error) {
	m := &Manager{Path: path, Window: window}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("無法讀取對話歷史 %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &m.Entries); err != nil {
		// 格式毀損時不中斷主流程，從空歷史重新開始
		m.Entries = nil
	}
	return m, nil
}

// AppendTurn 加入一輪對話，雙方使用同一個時間戳記
// 在 Content 前綴 [日期時間] 讓 AI 有時間脈絡，可分辨幾秒前與幾天前的對話
func (m *Manager) AppendTurn(userMsg, assistantMsg string) {
	now := time.Now()
	stamp := now.Format("2006-01-02 15:04:05")
	m.Entries = append(m.Entries,
		Entry{Role: "user", Content: fmt.Sprintf("[%s] %s", stamp, userMsg), Stamp: now},
		Entry{Role: "assistant", Content: fmt.Sprintf("[%s] %s", stamp, assistantMsg), Stamp: now},
	)
}

// Save 儲存歷史，超過 Window 輪時丟棄最舊的紀錄
func (m *Manager) Save() error {
	if m.Window > 0 && len(m.Entries) > m.Window*2 {
		m.Entries = m.Entries[len(m.Entries)-m.Window*2:]
	}
	data, err := json.MarshalIndent(m.Entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(m.Path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	if err := os.WriteFile(m.Path, data, 0644); err != nil {
		return fmt.Errorf("無法儲存對話歷史: %w", err)
	}
	return nil
}

// Reset 清空對話歷史並寫回檔案
func (m *Manager) Reset() error {
	m.Entries = nil
	return os.WriteFile(m.Path, []byte("[]\n"), 0644)
}

// Transcript 輸出純文字逐字稿 (history --show 與 PDF 匯出共用)
func (m *Manager) Transcript() string {
	out := ""
	for _, e := range m.Entries {
		out += fmt.Sprintf("%s: %s\n", e.Role, e.Content)
	}
	return out
}

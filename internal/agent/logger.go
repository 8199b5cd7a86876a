package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogEvent 定義日誌事件類型
type LogEvent string

const (
	EventUserInput   LogEvent = "user_input"
	EventSnapshot    LogEvent = "snapshot"
	EventModelSelect LogEvent = "model_select"
	EventAIResponse  LogEvent = "ai_response"
	EventHACall      LogEvent = "ha_call"
	EventError       LogEvent = "error"
)

// LogEntry 定義單條日誌結構 (JSONL)
type LogEntry struct {
	Timestamp string   `json:"timestamp"`
	Level     string   `json:"level"` // INFO 或 DEBUG
	Event     LogEvent `json:"event"`
	Content   string   `json:"content,omitempty"`
	// HA 呼叫相關欄位
	Service string `json:"service,omitempty"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SystemLogger 負責寫入系統日誌
// debug=false 時 DEBUG 等級的紀錄會被丟棄 (info 模式)
type SystemLogger struct {
	mu    sync.Mutex
	file  *os.File
	debug bool
}

// NewSystemLogger 初始化日誌器
func NewSystemLogger(logPath string, debug bool) (*SystemLogger, error) {
	if dir := filepath.Dir(logPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &SystemLogger{file: f, debug: debug}, nil
}

func (l *SystemLogger) write(entry LogEntry) {
	if l == nil || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.Timestamp = time.Now().Format(time.RFC3339)
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.file.Write(append(data, '\n'))
}

// Info 寫入一般事件
func (l *SystemLogger) Info(event LogEvent, content string) {
	l.write(LogEntry{Level: "INFO", Event: event, Content: content})
}

// Debug 寫入除錯事件，info 模式下直接丟棄
func (l *SystemLogger) Debug(event LogEvent, content string) {
	if l == nil || !l.debug {
		return
	}
	l.write(LogEntry{Level: "DEBUG", Event: event, Content: content})
}

// HACall 記錄一次 HA 服務呼叫與結果
func (l *SystemLogger) HACall(service, result string) {
	l.write(LogEntry{Level: "INFO", Event: EventHACall, Service: service, Result: result})
}

// Error 記錄錯誤
func (l *SystemLogger) Error(content string, err error) {
	entry := LogEntry{Level: "INFO", Event: EventError, Content: content}
	if err != nil {
		entry.Error = err.Error()
	}
	l.write(entry)
}

// Close 關閉日誌檔案
func (l *SystemLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

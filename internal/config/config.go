package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config 儲存全域配置參數
// 細部設定 (HA URL、檔案路徑等) 放在 preferences 檔，這裡只處理環境層級的值
type Config struct {
	PrefsPath string // preferences YAML 檔路徑
	Provider  string // "openai" (預設) 或 "ollama"
	OllamaURL string
}

// LoadConfig 負責初始化配置，支援 .env 檔案與環境變數
func LoadConfig() *Config {
	exe, _ := os.Executable()
	exeDir := filepath.Dir(exe)

	// 嘗試從多個位置載入 envfile
	// 優先順序：當前目錄 > 執行檔目錄
	_ = godotenv.Load("envfile")
	_ = godotenv.Load(filepath.Join(exeDir, "envfile"))

	return &Config{
		// 從環境變數讀取，若無則使用後方的預設值
		PrefsPath: getEnv("HAGPT_PREFS", "hagpt.yaml"),
		Provider:  getEnv("HAGPT_PROVIDER", "openai"),
		OllamaURL: getEnv("OLLAMA_HOST", "http://localhost:11434"),
	}
}

// OpenAIKey 讀取 OpenAI 金鑰，缺少時回傳空字串由呼叫端記錄錯誤
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// HAToken 讀取 Home Assistant 長效權杖
func HAToken() string {
	return os.Getenv("HA_TOKEN")
}

// getEnv 是輔助函式，用來處理環境變數與預設值的邏輯
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

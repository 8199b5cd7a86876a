package preferences

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// 設定鍵名，對應 hagpt.yaml 最上層欄位
const (
	KeyHAURL             = "ha_url"
	KeyBaseURL           = "base_url"
	KeyEntitiesFile      = "entities_file"
	KeyPromptsFile       = "prompts_file"
	KeyHistoryFile       = "history_file"
	KeyLogFile           = "log_file"
	KeyLogMode           = "log_mode"
	KeyDefaultPreference = "default_preference"
	KeyReasoningEffort   = "reasoning_effort"
	KeyIntelligenceLevel = "intelligence_level"
	KeyHistoryWindow     = "history_window"
	KeyDatabaseFile      = "database_file"
)

// Preferences 管理設定值與使用者偏好 (hagpt.yaml)
// 虛擬實體 (switch.debug, input_select.preferences) 透過 Set 改值並立即寫回檔案
type Preferences struct {
	v    *viper.Viper
	path string
}

// New 載入 preferences 檔案，檔案不存在視為啟動錯誤
func New(path string) (*Preferences, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// 合理的預設值，檔案中缺少個別欄位時沿用
	v.SetDefault(KeyLogMode, "info")
	v.SetDefault(KeyLogFile, "hagpt.log")
	v.SetDefault(KeyHistoryFile, "history.json")
	v.SetDefault(KeyHistoryWindow, 20)
	v.SetDefault(KeyDatabaseFile, "hagpt.db")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("無法讀取 preferences 檔案 %s: %w", path, err)
	}
	return &Preferences{v: v, path: path}, nil
}

// Get 取得設定值，缺少鍵時回傳零值並記錄警告
func (p *Preferences) Get(key string) string {
	if !p.v.IsSet(key) {
		log.Printf("⚠️ [Preferences] 設定 %q 不存在，使用空值", key)
		return ""
	}
	return p.v.GetString(key)
}

// GetInt 取得整數設定值
func (p *Preferences) GetInt(key string) int {
	return p.v.GetInt(key)
}

// Set 變更設定值並立即寫回檔案
func (p *Preferences) Set(key, value string) error {
	p.v.Set(key, value)
	if err := p.v.WriteConfig(); err != nil {
		return fmt.Errorf("preferences 寫回失敗: %w", err)
	}
	log.Printf("[Preferences] %s 目前設定值: %s", key, value)
	return nil
}

// UserPrefNames 回傳所有使用者偏好名稱 (排序過，輸出才穩定)
func (p *Preferences) UserPrefNames() []string {
	prefs := p.v.GetStringMapString("user_prefs")
	names := make([]string, 0, len(prefs))
	for name := range prefs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidPreferenceNames 組出給 AI 看的偏好名稱清單字串
func (p *Preferences) ValidPreferenceNames() string {
	names := p.UserPrefNames()
	if len(names) == 0 {
		return "Valid Preference Names ()"
	}
	return "Valid Preference Names (" + strings.Join(names, ", ") + ")"
}

// ActivePreference 取得目前生效的偏好內容，無有效預設時回傳空字串
func (p *Preferences) ActivePreference() string {
	def := p.v.GetString(KeyDefaultPreference)
	if def == "" {
		return ""
	}
	prefs := p.v.GetStringMapString("user_prefs")
	// viper 會把 map 鍵轉小寫
	return prefs[strings.ToLower(def)]
}

// Path 回傳 preferences 檔案路徑 (health 指令顯示用)
func (p *Preferences) Path() string { return p.path }

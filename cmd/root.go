package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cbcode4007/ai-hagpt/internal/agent"
	"github.com/cbcode4007/ai-hagpt/internal/config"
	"github.com/cbcode4007/ai-hagpt/internal/database"
	"github.com/cbcode4007/ai-hagpt/internal/history"
	"github.com/cbcode4007/ai-hagpt/internal/homeassistant"
	"github.com/cbcode4007/ai-hagpt/internal/preferences"
	"github.com/cbcode4007/ai-hagpt/internal/prompt"
	"github.com/cbcode4007/ai-hagpt/llms"
	"github.com/cbcode4007/ai-hagpt/llms/openai"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	aiStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	commandHdr = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	thinkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// rootCmd 代表基礎指令：hagpt "<訊息>" [info|debug]
// 第一個參數是給 AI 的訊息，第二個參數可選，覆寫這次執行的日誌模式
var rootCmd = &cobra.Command{
	Use:   `hagpt "<MESSAGE_TO_AI>" [info|debug]`,
	Short: "透過 AI 控制 Home Assistant 的智慧家庭助手",
	Long:  `把自然語言訊息交給 AI 分類：智慧家庭指令會派送到 Home Assistant，一般閒聊則直接回覆。`,
	Args:  cobra.RangeArgs(1, 2),
	Run:   runAsk,
}

// Execute 將所有子指令註冊到根指令並執行
func Execute() {
	cfg = config.LoadConfig()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadPrefs 載入 preferences 檔，子指令共用
func loadPrefs() *preferences.Preferences {
	prefs, err := preferences.New(cfg.PrefsPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	return prefs
}

// resolveLogMode 決定這次執行的日誌模式：命令列參數 > preferences
func resolveLogMode(prefs *preferences.Preferences, args []string) (string, error) {
	mode := strings.ToLower(prefs.Get(preferences.KeyLogMode))
	if len(args) == 2 {
		arg := strings.ToLower(args[1])
		if arg != "info" && arg != "debug" {
			return "", fmt.Errorf("日誌模式只接受 info 或 debug，收到 %q", args[1])
		}
		mode = arg
	}
	return mode, nil
}

func runAsk(cmd *cobra.Command, args []string) {
	userMsg := args[0]
	prefs := loadPrefs()

	logMode, err := resolveLogMode(prefs, args)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	debug := logMode == "debug"

	logger, err := agent.NewSystemLogger(prefs.Get(preferences.KeyLogFile), debug)
	if err != nil {
		fmt.Printf("⚠️ [System] Failed to initialize system logger: %v\n", err)
	} else {
		defer logger.Close()
	}

	// 金鑰檢查先做，省下一次失敗的網路呼叫
	if cfg.Provider == "openai" && config.OpenAIKey() == "" {
		logger.Error("OPENAI_API_KEY environment variable not found", nil)
		fmt.Println("❌ OPENAI_API_KEY 環境變數不存在，需要 OpenAI API Key 才能執行")
		os.Exit(1)
	}
	if config.HAToken() == "" {
		logger.Error("HA_TOKEN environment variable not found", nil)
		fmt.Println("❌ HA_TOKEN 環境變數不存在，需要 Home Assistant Token 才能執行")
		os.Exit(1)
	}

	ha := homeassistant.NewClient(
		prefs.Get(preferences.KeyHAURL),
		config.HAToken(),
		prefs.Get(preferences.KeyBaseURL),
		prefs,
	)
	// payload 紀錄進系統日誌而不是 stderr，info 模式下會被丟棄
	ha.Debugf = func(format string, args ...interface{}) {
		logger.Debug(agent.EventHACall, fmt.Sprintf(format, args...))
	}

	lib, err := prompt.LoadLibrary(prefs.Get(preferences.KeyPromptsFile))
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	systemPrompt, err := lib.Get("hagpt")
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	hist, err := history.Load(prefs.Get(preferences.KeyHistoryFile), prefs.GetInt(preferences.KeyHistoryWindow))
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	provider, err := llms.GetProviderFunc(cfg.Provider)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	// 互動紀錄是輔助功能，開不起來就跳過
	var recorder agent.Recorder
	if db, err := database.NewSQLite(prefs.Get(preferences.KeyDatabaseFile)); err == nil {
		defer db.Close()
		recorder = db
	} else {
		logger.Error("interaction database unavailable", err)
	}

	// 預設模型，稍後快照取得 intelligence_level 時會再覆寫
	model, verbosity := openai.ModelMedium, "low"
	if cfg.Provider == "ollama" {
		model, verbosity = getEnvDefault("HAGPT_MODEL", "llama3.3"), ""
	}

	myAgent := &agent.Agent{
		Provider:     provider,
		HA:           ha,
		History:      hist,
		Logger:       logger,
		Recorder:     recorder,
		SystemPrompt: systemPrompt,
		EntitiesFile: prefs.Get(preferences.KeyEntitiesFile),
		ModelName:    model,
		Options:      llms.Options{Verbosity: verbosity, Temperature: 0.7, MaxTokens: 2048},
		PrefNames:    prefs.ValidPreferenceNames(),
		ActivePref:   prefs.ActivePreference(),
	}
	if myAgent.ActivePref == "" {
		logger.Info(agent.EventUserInput, "No Active Preference is being added to prompt. Ensure a valid default is set.")
	}

	// 設定 UI 回調 (Bridging Agent Events -> CLI UI)
	myAgent.OnGenerateStart = func() {
		fmt.Print(thinkStyle.Render("AI 正在思考中..."))
	}
	myAgent.OnModelSelected = func(level string) {
		if cfg.Provider != "openai" {
			return // 本機模型不跟著 intelligence_level 切換
		}
		myAgent.ModelName, myAgent.Options.Verbosity = openai.SelectModel(level)
	}
	myAgent.OnCommandResult = func(service, result string) {
		fmt.Print("\r\033[K")
		icon := "✅"
		if strings.HasPrefix(result, "Request error") || !strings.HasPrefix(result, "2") {
			icon = "❌"
		}
		fmt.Printf("%s%s %s -> %s\n", commandHdr.Render(">> 指令派送: "), icon, service, result)
	}

	result, err := myAgent.Ask(userMsg)
	if err != nil {
		fmt.Print("\r\033[K")
		fmt.Printf("❌ 錯誤: %v\n", err)
		os.Exit(1)
	}

	if result.Kind == agent.KindChat {
		fmt.Print("\r\033[K")
		renderer, _ := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(0), // 自動適配終端寬度，不強制切斷
		)
		header := aiStyle.Render(">> 回覆: ")
		fmt.Println(header)
		out, rerr := renderer.Render(result.ResponseText)
		if rerr != nil {
			out = result.ResponseText
		}
		fmt.Println(strings.TrimSpace(out))
		clipboard.WriteAll(result.ResponseText)
		return
	}
	if result.ResponseText != "" {
		fmt.Println(result.ResponseText)
	}
}

func getEnvDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

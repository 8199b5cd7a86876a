package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cbcode4007/ai-hagpt/internal/config"
	"github.com/cbcode4007/ai-hagpt/internal/database"
	"github.com/cbcode4007/ai-hagpt/internal/preferences"
	"github.com/cbcode4007/ai-hagpt/llms/ollama"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "檢查 HAGPT 運行環境狀態",
	Run: func(cmd *cobra.Command, args []string) {
		prefs := loadPrefs()
		fmt.Println(lipgloss.NewStyle().Bold(true).Render("\n🔍 HAGPT 系統健康檢查\n"))

		// 1. 金鑰檢查
		fmt.Print(labelStyle.Render("1. OpenAI API Key: "))
		if config.OpenAIKey() != "" {
			fmt.Println(successStyle.Render("● 已設定 (OK)"))
		} else {
			fmt.Println(failStyle.Render("○ 未設定 - 請在 envfile 加入 OPENAI_API_KEY"))
		}

		fmt.Print(labelStyle.Render("2. Home Assistant Token: "))
		if config.HAToken() != "" {
			fmt.Println(successStyle.Render("● 已設定 (OK)"))
		} else {
			fmt.Println(failStyle.Render("○ 未設定 - 請在 envfile 加入 HA_TOKEN"))
		}

		// 2. Home Assistant API 是否在線
		fmt.Print(labelStyle.Render("3. Home Assistant API: "))
		haURL := prefs.Get(preferences.KeyHAURL)
		resp, err := resty.New().SetTimeout(5*time.Second).R().
			SetAuthToken(config.HAToken()).
			Get(haURL + "/api/")
		if err == nil && !resp.IsError() {
			fmt.Println(successStyle.Render("● 在線 (OK)"))
		} else {
			fmt.Println(failStyle.Render("○ 離線 (ERROR) - 請確認 " + haURL + " 可連線"))
		}

		// 3. 本機備援 (Ollama)，只有 HAGPT_PROVIDER=ollama 時才重要
		if cfg.Provider == "ollama" {
			fmt.Print(labelStyle.Render("4. Ollama 服務狀態: "))
			if ollama.CheckService(cfg.OllamaURL) {
				fmt.Println(successStyle.Render("● 在線 (OK)"))
			} else {
				fmt.Println(failStyle.Render("○ 離線 (ERROR) - 請確認 Ollama 是否已啟動"))
			}
		}

		// 4. 設定與歷史檔案
		fmt.Print(labelStyle.Render("5. Preferences 檔案: "))
		fmt.Printf("%s (%s)\n", successStyle.Render("● 正常"), prefs.Path())

		histPath := prefs.Get(preferences.KeyHistoryFile)
		fmt.Print(labelStyle.Render("6. 對話歷史檔案: "))
		info, err := os.Stat(histPath)
		if os.IsNotExist(err) {
			fmt.Println(failStyle.Render("○ 尚未建立 (第一次對話後會自動生成)"))
		} else if err == nil {
			sizeKB := float64(info.Size()) / 1024
			fmt.Printf("%s (大小: %.2f KB, 位置: %s)\n", successStyle.Render("● 正常"), sizeKB, histPath)
		}

		// 5. 最近的互動紀錄
		fmt.Print(labelStyle.Render("7. 互動紀錄: "))
		db, err := database.NewSQLite(prefs.Get(preferences.KeyDatabaseFile))
		if err != nil {
			fmt.Println(failStyle.Render("○ 資料庫無法開啟 - " + err.Error()))
			fmt.Println()
			return
		}
		defer db.Close()

		recent, err := db.RecentInteractions(3)
		if err != nil || len(recent) == 0 {
			fmt.Println(failStyle.Render("○ 尚無紀錄"))
		} else {
			fmt.Println(successStyle.Render("● 正常"))
			for _, in := range recent {
				fmt.Printf("   - [%s] %s -> %s\n", in.Kind, in.Query, in.Response)
			}
		}

		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

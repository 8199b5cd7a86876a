package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cbcode4007/ai-hagpt/internal/history"
	"github.com/cbcode4007/ai-hagpt/internal/preferences"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	historyReset bool
	historyShow  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "檢視或清除對話歷史",
	Run: func(cmd *cobra.Command, args []string) {
		prefs := loadPrefs()
		m, err := history.Load(prefs.Get(preferences.KeyHistoryFile), prefs.GetInt(preferences.KeyHistoryWindow))
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		if historyReset {
			if err := m.Reset(); err != nil {
				fmt.Printf("❌ 清除失敗: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("🧹 對話歷史已清除。")
			return
		}

		if len(m.Entries) == 0 {
			fmt.Println("ℹ️ 目前沒有任何對話歷史紀錄。")
			return
		}

		if historyShow {
			fmt.Print(m.Transcript())
			return
		}

		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		fmt.Println(headerStyle.Render("\n📜 對話歷史摘要："))
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("- 共 %d 則訊息 (%d 輪)\n", len(m.Entries), len(m.Entries)/2)
		fmt.Printf("- 最後更新: %s\n", m.Entries[len(m.Entries)-1].Stamp.Format("2006-01-02 15:04"))
		fmt.Println("- 使用 --show 檢視全文，--reset 清除")
		fmt.Println()
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyReset, "reset", false, "清除全部對話歷史")
	historyCmd.Flags().BoolVar(&historyShow, "show", false, "輸出完整逐字稿")
	rootCmd.AddCommand(historyCmd)
}

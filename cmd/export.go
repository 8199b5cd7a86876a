package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cbcode4007/ai-hagpt/export"
	"github.com/cbcode4007/ai-hagpt/internal/history"
	"github.com/cbcode4007/ai-hagpt/internal/preferences"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.pdf]",
	Short: "將對話逐字稿匯出成 PDF",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prefs := loadPrefs()
		m, err := history.Load(prefs.Get(preferences.KeyHistoryFile), prefs.GetInt(preferences.KeyHistoryWindow))
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		if len(m.Entries) == 0 {
			fmt.Println("ℹ️ 目前沒有任何對話歷史紀錄，無可匯出內容。")
			return
		}

		filename := fmt.Sprintf("hagpt-transcript-%s.pdf", time.Now().Format("20060102-150405"))
		if len(args) == 1 {
			filename = args[0]
		}

		title := fmt.Sprintf("HAGPT 對話逐字稿 (%s)", time.Now().Format("2006-01-02 15:04"))
		if err := export.SaveTranscriptPDF(filename, title, m.Transcript()); err != nil {
			fmt.Printf("❌ 匯出失敗: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("✅ 已匯出: %s\n", filename)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

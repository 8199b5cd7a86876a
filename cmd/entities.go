package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cbcode4007/ai-hagpt/internal/config"
	"github.com/cbcode4007/ai-hagpt/internal/homeassistant"
	"github.com/cbcode4007/ai-hagpt/internal/preferences"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "列出允許清單內實體的目前狀態",
	Run: func(cmd *cobra.Command, args []string) {
		prefs := loadPrefs()
		if config.HAToken() == "" {
			fmt.Println("❌ HA_TOKEN 環境變數不存在，需要 Home Assistant Token 才能執行")
			os.Exit(1)
		}

		ha := homeassistant.NewClient(
			prefs.Get(preferences.KeyHAURL),
			config.HAToken(),
			prefs.Get(preferences.KeyBaseURL),
			prefs,
		)

		snap, err := ha.EntitySnapshot(prefs.Get(preferences.KeyEntitiesFile))
		if err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		fmt.Println(headerStyle.Render("\n🏠 實體狀態快照："))
		fmt.Println(strings.Repeat("─", 40))
		fmt.Println(snap.Text)
		if snap.IntelligenceLevel != "" {
			fmt.Printf("\nIntelligence Level: %s\n", snap.IntelligenceLevel)
		}
		fmt.Println()
	},
}

func init() {
	rootCmd.AddCommand(entitiesCmd)
}

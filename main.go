package main

import (
	"fmt"
	"os"

	"github.com/cbcode4007/ai-hagpt/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// 載入 envfile 檔案 (OPENAI_API_KEY, HA_TOKEN)
	if err := godotenv.Load("envfile"); err != nil {
		// 金鑰也可能已存在於環境變數中，envfile 缺少不算錯誤
		if !os.IsNotExist(err) {
			fmt.Printf("⚠️  [Main] envfile 檔案存在但無法載入: %v\n", err)
		}
	}
	cmd.Execute()
}

package export

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jung-kurt/gofpdf"
)

func getSystemFont() string {
	// 優先順序 1: 根據作業系統自動選擇系統字體
	switch runtime.GOOS {
	case "windows":
		return "C:\\Windows\\Fonts\\msjh.ttc" // 微軟正黑體
	case "darwin": // macOS
		return "/Library/Fonts/Arial Unicode.ttf"
	case "linux":
		return "/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf"
	default: // 優先順序 2: 專案目錄下的自定義字體
		localFont := "assets/fonts/TaipeiSansTCBeta-Regular.ttf"
		if _, err := os.Stat(localFont); err == nil {
			return localFont
		}
		return ""
	}
}

// SaveTranscriptPDF 把對話逐字稿輸出成 PDF
func SaveTranscriptPDF(filename, title, transcript string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	fontPath := getSystemFont()

	if _, err := os.Stat(fontPath); err != nil {
		return fmt.Errorf("找不到適合的中文字體，建議手動將字體放至 assets/fonts/msjh.ttf")
	}

	// 註冊 UTF-8 字型後才能輸出中文內容
	pdf.AddUTF8Font("MainFont", "", fontPath)
	pdf.SetFont("MainFont", "", 14)
	pdf.AddPage()
	pdf.MultiCell(0, 10, title, "", "L", false)
	pdf.SetFont("MainFont", "", 11)
	// 0 代表延伸到頁面邊緣，8 代表行高
	pdf.MultiCell(0, 8, transcript, "", "L", false)
	return pdf.OutputFileAndClose(filename)
}

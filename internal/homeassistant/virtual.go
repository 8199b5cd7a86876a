package homeassistant

import (
	"fmt"
	"log"
)

// 虛擬實體：這些 entity_id 只存在於 entities 檔案裡，目的是讓 AI 以為
// 它們是真的 HA 實體。CallService 會在發出 HTTP 前攔截它們，
// 改成更新應用程式自己的設定 (switch.debug, input_select.preferences)
// 或轉送到基地台 API (media_player.base_speaker)。

// setVirtualFileEntity 把虛擬實體的變更寫回 preferences 檔
func (c *Client) setVirtualFileEntity(virtEntity, virtSetting string) {
	var settingName, settingValue string

	switch virtEntity {
	case "switch.debug":
		settingName = "log_mode"
		if virtSetting == "turn_on" {
			settingValue = "debug"
		} else {
			settingValue = "info"
		}
	case "input_select.preferences":
		settingName = "default_preference"
		settingValue = virtSetting
	default:
		log.Printf("⚠️ [HA] Virtual Entity: %s 無法設為 %q，尚未支援", virtEntity, virtSetting)
		return
	}

	if c.Store == nil {
		log.Printf("⚠️ [HA] 未掛載設定存放區，虛擬實體 %s 的變更被忽略", virtEntity)
		return
	}
	if err := c.Store.Set(settingName, settingValue); err != nil {
		log.Printf("❌ [HA] 虛擬實體 %s 寫回設定失敗: %v", virtEntity, err)
	}
}

// setVirtualEntityBase 把音量設定轉送到基地台 API
// 例如 volume_level = 0.5 -> POST {base_url}/control {"volume":{"level":0.5}}
func (c *Client) setVirtualEntityBase(virtEntity string, value interface{}) string {
	if virtEntity != "media_player.base_speaker" {
		return fmt.Sprintf("Request error: unsupported virtual entity %s", virtEntity)
	}

	volLevel, ok := toFloat(value)
	if !ok {
		log.Printf("❌ [HA] 無法把 vol_level %v 轉成 float", value)
		return "Request error: Volume_Float_Conversion"
	}

	payload := map[string]interface{}{
		"volume": map[string]float64{"level": volLevel},
	}
	maxURL := c.MaxURL + "/control"

	c.debugf("[Max] API sending as: %s", maxURL)
	c.debugf("[Max] API sending with: %v", payload)

	resp, err := c.http.R().
		SetBody(payload).
		Post(maxURL)

	if err != nil {
		log.Printf("❌ [Max] Base service call failed: %v", err)
		return fmt.Sprintf("Request error: %v", err)
	}
	if resp.IsError() {
		log.Printf("❌ [Max] Base ERROR %d: %s", resp.StatusCode(), resp.String())
		return fmt.Sprintf("%d: %s", resp.StatusCode(), resp.String())
	}
	return fmt.Sprintf("%d: OK", resp.StatusCode())
}

// toFloat 處理 AI 回傳的數值，可能是 JSON number 也可能是字串
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%g", &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

package homeassistant

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Target 指定服務作用的實體
type Target struct {
	EntityID string `json:"entity_id"`
}

// SettingStore 是虛擬實體寫回設定時需要的最小介面
// (由 preferences.Preferences 實作)
type SettingStore interface {
	Set(key, value string) error
}

// Client 負責呼叫 Home Assistant services API
type Client struct {
	BaseURL string // HA 位址，例如 http://homeassistant.local:8123
	Token   string // 長效存取權杖
	MaxURL  string // 家用基地台 (Max Base) API 位址，虛擬音量實體用
	Store   SettingStore
	// Debugf 接收送出前的 payload 紀錄，nil 表示不記錄
	// (由呼叫端接到系統日誌，info 模式下保持安靜)
	Debugf func(format string, args ...interface{})
	http   *resty.Client
}

// debugf 是 nil 安全的 Debugf 包裝
func (c *Client) debugf(format string, args ...interface{}) {
	if c.Debugf != nil {
		c.Debugf(format, args...)
	}
}

// NewClient 建立 HA client
func NewClient(baseURL, token, maxURL string, store SettingStore) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		MaxURL:  strings.TrimSuffix(maxURL, "/"),
		Store:   store,
		http:    resty.New().SetTimeout(10 * time.Second),
	}
}

// CallService 呼叫 "domain.service" 格式的 HA 服務並回傳結果字串
// 結果一律是 "狀態碼: OK"、"狀態碼: 內容" 或 "Request error: ..."，不把錯誤往上拋，
// 讓主流程能把失敗當成一般結果回報給使用者
func (c *Client) CallService(service string, target Target, data, variables map[string]interface{}) string {
	parts := strings.SplitN(service, ".", 2)
	if len(parts) != 2 {
		return fmt.Sprintf("Request error: invalid service %q", service)
	}
	domain, serviceName := parts[0], parts[1]

	url := fmt.Sprintf("%s/api/services/%s/%s", c.BaseURL, domain, serviceName)
	entityID := target.EntityID
	payload := map[string]interface{}{}

	// 依 HA 實體類型組出 payload
	switch {
	case strings.HasPrefix(service, "script.") && len(variables) > 0:
		// Scripts 走 variables 欄位
		payload = map[string]interface{}{"entity_id": entityID, "variables": variables}

	case service == "input_select.select_option" && len(data) > 0:
		// 虛擬實體直接改設定檔，跳過不存在的 HA 實體
		if entityID == "input_select.preferences" {
			if opt, ok := data["option"].(string); ok {
				c.setVirtualFileEntity(entityID, opt)
				return "200: OK"
			}
		}
		// 其他真實存在的 Input Select (例如 intelligence_level)
		payload["entity_id"] = entityID
		for k, v := range data {
			payload[k] = v
		}

	case strings.HasPrefix(service, "notify.") && len(data) > 0:
		// Echo Show 的通知有自己的 URL 格式
		if strings.HasPrefix(service, "notify.echo_") {
			payload["entity_id"] = entityID
			url = fmt.Sprintf("%s/api/services/%s/send_message", c.BaseURL, domain)
		}
		for k, v := range data {
			payload[k] = v
		}

	default:
		// 虛擬實體直接改設定檔，跳過不存在的 HA 實體
		if entityID == "switch.debug" {
			c.setVirtualFileEntity(entityID, serviceName)
			return "200: OK"
		}
		if entityID == "media_player.base_speaker" && len(data) > 0 {
			// 音量透過基地台 API 設定 -> media_player.base_speaker
			c.debugf("[HA] AI Volume Level: %v", data["volume_level"])
			return c.setVirtualEntityBase(entityID, data["volume_level"])
		}

		// 其他真實的 HA 服務 (light.turn_on, switch.toggle 等)
		payload["entity_id"] = entityID
		for k, v := range data {
			payload[k] = v
		}
	}

	c.debugf("[HA] API sending as: %s", url)
	c.debugf("[HA] API sending with: %v", payload)

	resp, err := c.http.R().
		SetAuthToken(c.Token).
		SetBody(payload).
		Post(url)

	if err != nil {
		log.Printf("❌ [HA] service call failed: %v", err)
		return fmt.Sprintf("Request error: %v", err)
	}
	if resp.IsError() {
		log.Printf("❌ [HA] ERROR %d: %s", resp.StatusCode(), resp.String())
		return fmt.Sprintf("%d: %s", resp.StatusCode(), resp.String())
	}
	return fmt.Sprintf("%d: OK", resp.StatusCode())
}

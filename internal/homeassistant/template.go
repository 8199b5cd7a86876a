package homeassistant

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var intelligenceRe = regexp.MustCompile(`input_select\.intelligence_level.*?state:(\w+)`)

// ReadEntityList 讀取 entities 允許清單檔，一行一個 entity_id
func ReadEntityList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("entity 清單檔不存在: %s", path)
	}
	defer file.Close()

	var entities []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entities = append(entities, line)
	}
	return entities, scanner.Err()
}

// BuildStateTemplate 組出查詢實體狀態的 Jinja2 模板
// 輸出格式: entity_id (Friendly Name) state:on
func BuildStateTemplate(entities []string) string {
	quoted := make([]string, len(entities))
	for i, e := range entities {
		quoted[i] = fmt.Sprintf("%q", e)
	}
	return "{% for e in [" + strings.Join(quoted, ",") + "] %}" +
		`{{ e }} ({{ state_attr(e, "friendly_name") or ` +
		`e.split('.')[1]|replace('_',' ')|title }}) state:{{ states(e) }}\n{% endfor %}`
}

// Snapshot 是一次實體狀態快照
type Snapshot struct {
	Text              string // 清理過、給 AI 看的實體狀態文字
	IntelligenceLevel string // input_select.intelligence_level 的目前狀態 (可能為空)
}

// EntitySnapshot 透過 /api/template 取回允許清單中實體的目前狀態
func (c *Client) EntitySnapshot(entitiesFile string) (*Snapshot, error) {
	entities, err := ReadEntityList(entitiesFile)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetAuthToken(c.Token).
		SetBody(map[string]string{"template": BuildStateTemplate(entities)}).
		Post(c.BaseURL + "/api/template")

	if err != nil {
		return nil, fmt.Errorf("HA template 查詢失敗: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("HA template 錯誤 %d: %s", resp.StatusCode(), resp.String())
	}

	// 還原跳脫的換行並壓掉多餘空白
	text := strings.ReplaceAll(resp.String(), `\n`, "\n")
	text = strings.Join(strings.Fields(text), " ")

	snap := &Snapshot{Text: text}
	if m := intelligenceRe.FindStringSubmatch(text); m != nil {
		snap.IntelligenceLevel = m[1]
	}
	return snap, nil
}

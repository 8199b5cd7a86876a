package prompt

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Library 是 system prompt 的集合，從 YAML 檔載入
// 格式: prompt 名稱 -> prompt 內文
type Library struct {
	prompts map[string]string
}

// LoadLibrary 讀取 prompts 檔案
func LoadLibrary(path string) (*Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("無法讀取 prompts 檔案 %s: %w", path, err)
	}
	prompts := map[string]string{}
	if err := yaml.Unmarshal(raw, &prompts); err != nil {
		return nil, fmt.Errorf("prompts 檔案格式錯誤: %w", err)
	}
	return &Library{prompts: prompts}, nil
}

// Get 取得指定名稱的 prompt，找不到則回傳錯誤並列出可用名稱
func (l *Library) Get(name string) (string, error) {
	p, ok := l.prompts[name]
	if !ok {
		return "", fmt.Errorf("找不到 prompt: %s (可用: %s)", name, strings.Join(l.Names(), ", "))
	}
	return p, nil
}

// Names 列出所有可用的 prompt 名稱 (排序過，錯誤訊息才穩定)
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.prompts))
	for n := range l.prompts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

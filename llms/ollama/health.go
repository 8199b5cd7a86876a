package ollama

import (
	"encoding/json"
	"net/http"
)

// CheckService 檢查 Ollama API 是否在線
func CheckService(url string) bool {
	resp, err := http.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// IsModelPulled 檢查特定模型是否已經下載
func IsModelPulled(url, modelName string) (bool, error) {
	resp, err := http.Get(url + "/api/tags")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, err
	}

	for _, m := range tags.Models {
		// Ollama 回傳的名稱可能帶有 :latest 標籤
		if m.Name == modelName || m.Name == modelName+":latest" {
			return true, nil
		}
	}
	return false, nil
}

package llms

import "testing"

func TestGetProviderFunc(t *testing.T) {
	if _, err := GetProviderFunc(""); err != nil {
		t.Errorf("Empty provider should default to openai, got error: %v", err)
	}
	if _, err := GetProviderFunc("OpenAI"); err != nil {
		t.Errorf("Provider name should be case-insensitive, got error: %v", err)
	}
	if _, err := GetProviderFunc("ollama"); err != nil {
		t.Errorf("ollama should be supported, got error: %v", err)
	}
	if _, err := GetProviderFunc("copilot"); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

package llms

import (
	"errors"
	"strings"

	"github.com/cbcode4007/ai-hagpt/llms/ollama"
	"github.com/cbcode4007/ai-hagpt/llms/openai"
)

// GetProviderFunc 回傳指定名稱的 Provider 函式
// 目前支援: "openai" (預設), "ollama" (本機備援)
func GetProviderFunc(providerName string) (ChatFunc, error) {
	switch strings.ToLower(providerName) {
	case "openai", "": // 預設為 OpenAI
		return func(model string, messages []Message, opts Options) (Message, error) {
			msg, err := openai.Chat(model, toOpenAI(messages), openai.Options{
				Verbosity: opts.Verbosity,
				MaxTokens: opts.MaxTokens,
			})
			return Message{Role: msg.Role, Content: msg.Content}, err
		}, nil
	case "ollama":
		return func(model string, messages []Message, opts Options) (Message, error) {
			msg, err := ollama.Chat(model, toOllama(messages), ollama.Options{
				Temperature: opts.Temperature,
			})
			return Message{Role: msg.Role, Content: msg.Content}, err
		}, nil
	default:
		return nil, errors.New("unsupported provider: " + providerName)
	}
}

func toOpenAI(in []Message) []openai.Message {
	out := make([]openai.Message, len(in))
	for i, m := range in {
		out[i] = openai.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

func toOllama(in []Message) []ollama.Message {
	out := make([]ollama.Message, len(in))
	for i, m := range in {
		out[i] = ollama.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

package factory

import (
	"fmt"

	"nihongo-tutor-be/pkg/llm"
	"nihongo-tutor-be/pkg/llm/ollama"
	"nihongo-tutor-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured backend. Supported providers:
// "ollama" and "openai" (or any OpenAI-compatible endpoint).
func NewLLMProvider(provider, model, ollamaBaseURL, openaiBaseURL, openaiKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "openai":
		return openai.NewOpenAIProvider(openaiBaseURL, openaiKey, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}

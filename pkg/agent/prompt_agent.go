package agent

import (
	"context"
	"fmt"
	"log"

	"nihongo-tutor-be/pkg/chat"
	"nihongo-tutor-be/pkg/llm"
)

// PromptAgent is the plain persona handler: a system prompt, the history,
// and the user input straight through the LLM.
type PromptAgent struct {
	name         string
	systemPrompt string
	llmProvider  llm.LLMProvider
	logger       *log.Logger
}

func NewPromptAgent(name, systemPrompt string, llmProvider llm.LLMProvider, logger *log.Logger) *PromptAgent {
	return &PromptAgent{
		name:         name,
		systemPrompt: systemPrompt,
		llmProvider:  llmProvider,
		logger:       logger,
	}
}

func (a *PromptAgent) Handle(ctx context.Context, request *Request) (*Response, error) {
	messages := buildMessages(a.systemPrompt, request.History, request.Input)

	output, err := a.llmProvider.Chat(ctx, messages)
	if err != nil {
		a.logger.Printf("[AGENT:%s] chat failed for session %d: %v", a.name, request.SessionID, err)
		return nil, fmt.Errorf("agent %s failed: %w", a.name, err)
	}

	return &Response{Output: output}, nil
}

func buildMessages(systemPrompt string, history []chat.Turn, input string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	for _, turn := range history {
		role := "user"
		if turn.Role == chat.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: "user", Content: input})
	return messages
}

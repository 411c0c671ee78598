// Package chat holds the typed conversation history shared by the
// dispatcher, the agents, and the prompt layer.
package chat

import (
	"strings"

	"nihongo-tutor-be/internal/constant"
	"nihongo-tutor-be/internal/entity"
)

// Role tags a turn. Only two variants exist; switches over Role should be
// exhaustive.
type Role string

const (
	RoleHuman     Role = constant.ChatMessageRoleHuman
	RoleAssistant Role = constant.ChatMessageRoleAssistant
)

// Turn is one message in a conversation.
type Turn struct {
	Role    Role
	Content string
}

func Human(content string) Turn {
	return Turn{Role: RoleHuman, Content: content}
}

func Assistant(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// NoHistorySentinel is what ToPromptText renders for an empty conversation.
const NoHistorySentinel = "No chat history."

// ToHistory maps stored messages to typed turns, preserving order exactly.
// Messages are expected pre-sorted by message_order; this function never
// reorders or drops anything.
func ToHistory(messages []*entity.ChatMessage) []Turn {
	history := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case constant.ChatMessageRoleHuman:
			history = append(history, Human(msg.Content))
		default:
			history = append(history, Assistant(msg.Content))
		}
	}
	return history
}

// ToPromptText flattens a history into one "<label>: <content>" line per
// turn for prompt injection. Pure and idempotent.
func ToPromptText(history []Turn) string {
	if len(history) == 0 {
		return NoHistorySentinel
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case RoleHuman:
			lines = append(lines, "User: "+turn.Content)
		case RoleAssistant:
			lines = append(lines, "Assistant: "+turn.Content)
		}
	}
	return strings.Join(lines, "\n")
}

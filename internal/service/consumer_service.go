package service

import (
	"context"
	"encoding/json"
	"strings"

	"nihongo-tutor-be/internal/constant"
	"nihongo-tutor-be/internal/pkg/logger"
	"nihongo-tutor-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill/message"
)

// IConsumerService runs the background title generator. Sessions the
// dispatcher created keep the default "Session N" name until the first
// committed turn gives us something to summarize.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber     message.Subscriber
	sessionService ISessionService
	llmProvider    llm.LLMProvider
	logger         logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	sessionService ISessionService,
	llmProvider llm.LLMProvider,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:     subscriber,
		sessionService: sessionService,
		llmProvider:    llmProvider,
		logger:         logger,
	}
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, TurnCommittedTopic)
	if err != nil {
		return err
	}

	for msg := range messages {
		s.handle(ctx, msg)
		msg.Ack()
	}
	return nil
}

func (s *consumerService) handle(ctx context.Context, msg *message.Message) {
	var event TurnCommittedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.logger.Error("consumer", "failed to decode turn committed event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	data, err := s.sessionService.LoadSession(ctx, event.SessionId)
	if err != nil {
		s.logger.Warn("consumer", "session gone before title generation", map[string]interface{}{
			"session_id": event.SessionId,
		})
		return
	}

	// Only auto-named sessions get a generated title; a name the user
	// chose is theirs.
	if !strings.HasPrefix(data.Session.Name, constant.DefaultSessionNamePrefix) {
		return
	}

	title := s.generateTitle(ctx, event.UserInput)
	if title == "" {
		return
	}

	if err := s.sessionService.RenameSession(ctx, event.SessionId, title); err != nil {
		s.logger.Error("consumer", "failed to rename session", map[string]interface{}{
			"session_id": event.SessionId,
			"error":      err.Error(),
		})
	}
}

const titlePromptTemplate = `Summarize the following user message as a short session title.
Answer with the title only, at most six words, no quotes.

Message: `

func (s *consumerService) generateTitle(ctx context.Context, userInput string) string {
	response, err := s.llmProvider.Generate(ctx, titlePromptTemplate+userInput, llm.WithTemperature(0.2))
	if err != nil {
		s.logger.Warn("consumer", "title generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}

	title := strings.Trim(strings.TrimSpace(response), `"`)
	if len(title) > 80 {
		title = title[:80]
	}
	return title
}

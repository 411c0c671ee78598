package service

import (
	"encoding/json"

	"nihongo-tutor-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const TurnCommittedTopic = "chat.turn.committed"

// TurnCommittedEvent fires after a human/assistant pair is durably
// stored. Consumers get the first user input so they can derive a title
// without re-reading history.
type TurnCommittedEvent struct {
	SessionId int64  `json:"session_id"`
	UserInput string `json:"user_input"`
}

type IPublisherService interface {
	PublishTurnCommitted(event *TurnCommittedEvent)
}

type publisherService struct {
	publisher message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(publisher message.Publisher, logger logger.ILogger) IPublisherService {
	return &publisherService{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishTurnCommitted is fire-and-forget: a failed publish never fails
// the chat request that triggered it.
func (s *publisherService) PublishTurnCommitted(event *TurnCommittedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("publisher", "failed to marshal turn committed event", map[string]interface{}{
			"session_id": event.SessionId,
			"error":      err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(TurnCommittedTopic, msg); err != nil {
		s.logger.Error("publisher", "failed to publish turn committed event", map[string]interface{}{
			"session_id": event.SessionId,
			"error":      err.Error(),
		})
	}
}

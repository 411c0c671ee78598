package service

import (
	"context"
	"fmt"

	"nihongo-tutor-be/internal/constant"
	"nihongo-tutor-be/internal/dto"
	"nihongo-tutor-be/internal/pkg/logger"
	"nihongo-tutor-be/pkg/agent"
	"nihongo-tutor-be/pkg/chat"
	"nihongo-tutor-be/pkg/intent"
)

// IChatService is the dispatcher: it decides which session a message
// lands in, which handler answers it, and when the turn is committed.
type IChatService interface {
	Dispatch(ctx context.Context, userId string, req *dto.ChatRequest) (*dto.ChatResponse, error)
	EditAndResubmit(ctx context.Context, userId string, req *dto.ChatEditRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	sessionService ISessionService
	classifier     *intent.Classifier
	registry       *agent.Registry
	publisher      IPublisherService
	logger         logger.ILogger
}

func NewChatService(
	sessionService ISessionService,
	classifier *intent.Classifier,
	registry *agent.Registry,
	publisher IPublisherService,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		sessionService: sessionService,
		classifier:     classifier,
		registry:       registry,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *chatService) Dispatch(ctx context.Context, userId string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	// Confirmed redirect: the caller accepted an earlier proposal, so the
	// original question moves into a fresh session of the target intent.
	if req.RedirectTo != "" {
		question := req.OriginalQuestion
		if question == "" {
			question = req.UserInput
		}
		return s.dispatchToNewSession(ctx, userId, req.RedirectTo, question)
	}

	if req.SessionId != nil {
		return s.dispatchToExistingSession(ctx, userId, *req.SessionId, req.UserInput)
	}

	detected := s.classifier.Classify(ctx, req.UserInput)
	return s.dispatchToNewSession(ctx, userId, detected, req.UserInput)
}

// EditAndResubmit rewinds the last exchange and runs the corrected input
// through the session's own handler. No classification here: an edit
// never changes what kind of session this is.
func (s *chatService) EditAndResubmit(ctx context.Context, userId string, req *dto.ChatEditRequest) (*dto.ChatResponse, error) {
	if err := s.sessionService.RewindLastTurn(ctx, req.SessionId); err != nil {
		return nil, err
	}

	data, err := s.sessionService.LoadSession(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	sessionIntent := intentForSession(data.Session.SessionType)
	return s.answer(ctx, userId, data.Session.Id, sessionIntent, req.CorrectedInput, chat.ToHistory(data.History))
}

func (s *chatService) dispatchToExistingSession(ctx context.Context, userId string, sessionId int64, userInput string) (*dto.ChatResponse, error) {
	data, err := s.sessionService.LoadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	sessionIntent := intentForSession(data.Session.SessionType)
	detected := s.classifier.Classify(ctx, userInput)

	// A detected intent that disagrees with the session's type becomes a
	// proposal, never a silent hijack. Nothing is written on this path.
	// Deliberately narrower than proposing on every mismatch: qna doubles
	// as the classifier's ambiguity fallback, so a qna detection inside a
	// typed session is not treated as a topic change.
	if detected != constant.IntentQna && detected != sessionIntent {
		return &dto.ChatResponse{
			SessionId: sessionId,
			AiResponse: fmt.Sprintf(
				"This looks like a %s request, but the current session is for %s. Start a new %s session with this question?",
				detected, sessionIntent, detected),
			RedirectTo:       detected,
			OriginalQuestion: userInput,
		}, nil
	}

	return s.answer(ctx, userId, sessionId, sessionIntent, userInput, chat.ToHistory(data.History))
}

func (s *chatService) dispatchToNewSession(ctx context.Context, userId, detectedIntent, userInput string) (*dto.ChatResponse, error) {
	sessionType, ok := constant.SessionTypeForIntent[detectedIntent]
	if !ok {
		sessionType = constant.SessionTypeGeneral
	}

	created, err := s.sessionService.CreateSession(ctx, userId, &dto.CreateSessionRequest{
		Name:        constant.DefaultSessionNamePrefix + detectedIntent,
		SessionType: sessionType,
	})
	if err != nil {
		return nil, err
	}

	return s.answer(ctx, userId, created.Id, detectedIntent, userInput, nil)
}

// answer runs the handler and, only on success, commits the turn as a
// human/assistant pair and announces it.
func (s *chatService) answer(ctx context.Context, userId string, sessionId int64, intentName, userInput string, history []chat.Turn) (*dto.ChatResponse, error) {
	handler, ok := s.registry.Lookup(intentName)
	if !ok {
		// Nothing is persisted for an unsupported intent; the exchange
		// never happened as far as history is concerned.
		s.logger.Warn("chat", "no handler registered for intent", map[string]interface{}{
			"intent":     intentName,
			"session_id": sessionId,
		})
		return &dto.ChatResponse{
			SessionId:  sessionId,
			AiResponse: constant.UnsupportedIntentReply,
		}, nil
	}

	response, err := handler.Handle(ctx, &agent.Request{
		SessionID: sessionId,
		UserID:    userId,
		Input:     userInput,
		History:   history,
	})
	if err != nil {
		return nil, fmt.Errorf("handler %s: %w", intentName, err)
	}

	turns := []chat.Turn{
		chat.Human(userInput),
		chat.Assistant(response.Output),
	}
	if err := s.sessionService.AppendTurns(ctx, sessionId, turns); err != nil {
		return nil, err
	}

	s.publisher.PublishTurnCommitted(&TurnCommittedEvent{
		SessionId: sessionId,
		UserInput: userInput,
	})

	return &dto.ChatResponse{
		SessionId:  sessionId,
		AiResponse: response.Output,
	}, nil
}

func intentForSession(sessionType string) string {
	if intentName, ok := constant.IntentForSessionType[sessionType]; ok {
		return intentName
	}
	return constant.IntentQna
}

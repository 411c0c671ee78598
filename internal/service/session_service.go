package service

import (
	"context"
	"time"

	"nihongo-tutor-be/internal/apperror"
	"nihongo-tutor-be/internal/dto"
	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/pkg/logger"
	"nihongo-tutor-be/internal/repository/specification"
	"nihongo-tutor-be/internal/repository/unitofwork"
	"nihongo-tutor-be/pkg/chat"
)

// SessionData is what the dispatcher needs from a loaded session: the
// row itself plus the full ordered history.
type SessionData struct {
	Session *entity.ChatSession
	History []*entity.ChatMessage
}

// ISessionService is the session lifecycle controller plus the
// turn-append/rewind operations of the persistence contract.
type ISessionService interface {
	GetOrCreateUser(ctx context.Context, userId string) error
	CreateSession(ctx context.Context, userId string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	ListSessions(ctx context.Context, userId string) ([]*dto.SessionSummaryResponse, error)
	LoadSession(ctx context.Context, sessionId int64) (*SessionData, error)
	GetHistory(ctx context.Context, sessionId int64) (*dto.SessionHistoryResponse, error)
	AppendTurns(ctx context.Context, sessionId int64, turns []chat.Turn) error
	RewindLastTurn(ctx context.Context, sessionId int64) error
	RenameSession(ctx context.Context, sessionId int64, newName string) error
	DeleteSession(ctx context.Context, sessionId int64) error
	FindSession(ctx context.Context, userId, sessionType string, contextFilter map[string]any) (*dto.SessionSummaryResponse, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *sessionService) GetOrCreateUser(ctx context.Context, userId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.UserRepository().Upsert(ctx, &entity.User{
		Id:          userId,
		DisplayName: userId,
	})
	if err != nil {
		return apperror.NewPersistence("get_or_create_user", err)
	}
	return nil
}

func (s *sessionService) CreateSession(ctx context.Context, userId string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.NewPersistence("create_session", err)
	}
	defer uow.Rollback()

	// First contact creates the user row; duplicates are a no-op.
	if err := uow.UserRepository().Upsert(ctx, &entity.User{Id: userId, DisplayName: userId}); err != nil {
		return nil, apperror.NewPersistence("create_session", err)
	}

	sessionType := req.SessionType
	if sessionType == "" {
		sessionType = "GENERAL"
	}
	now := time.Now()
	session := entity.ChatSession{
		UserId:      userId,
		Name:        req.Name,
		SessionType: sessionType,
		Context:     req.Context,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, apperror.NewPersistence("create_session", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.NewPersistence("create_session", err)
	}

	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userId string) ([]*dto.SessionSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		// Read path degrades to empty; the cause lives in the logs.
		s.logger.Error("session", "failed to list sessions", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return []*dto.SessionSummaryResponse{}, nil
	}

	response := make([]*dto.SessionSummaryResponse, 0, len(sessions))
	for _, session := range sessions {
		response = append(response, &dto.SessionSummaryResponse{
			Id:        session.Id,
			Name:      session.Name,
			UpdatedAt: session.UpdatedAt,
		})
	}
	return response, nil
}

func (s *sessionService) LoadSession(ctx context.Context, sessionId int64) (*SessionData, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, apperror.NewPersistence("load_session", err)
	}
	if session == nil {
		return nil, apperror.NewNotFound("session", sessionId)
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "message_order", Desc: false},
	)
	if err != nil {
		return nil, apperror.NewPersistence("load_session", err)
	}

	return &SessionData{Session: session, History: history}, nil
}

func (s *sessionService) GetHistory(ctx context.Context, sessionId int64) (*dto.SessionHistoryResponse, error) {
	data, err := s.LoadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.MessageResponse, 0, len(data.History))
	for _, msg := range data.History {
		messages = append(messages, dto.MessageResponse{
			Role:    msg.Role,
			Content: msg.Content,
			Order:   msg.MessageOrder,
		})
	}
	return &dto.SessionHistoryResponse{SessionId: sessionId, Messages: messages}, nil
}

// AppendTurns assigns order numbers under the same transaction as the
// insert, with the session row locked to serialize concurrent appends.
func (s *sessionService) AppendTurns(ctx context.Context, sessionId int64, turns []chat.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.NewPersistence("append_turns", err)
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ForUpdate{},
	)
	if err != nil {
		return apperror.NewPersistence("append_turns", err)
	}
	if session == nil {
		return apperror.NewNotFound("session", sessionId)
	}

	maxOrder, err := uow.ChatMessageRepository().MaxOrder(ctx, sessionId)
	if err != nil {
		return apperror.NewPersistence("append_turns", err)
	}

	now := time.Now()
	for i, turn := range turns {
		message := entity.ChatMessage{
			SessionId:    sessionId,
			Role:         string(turn.Role),
			Content:      turn.Content,
			MessageOrder: maxOrder + i + 1,
			CreatedAt:    now,
		}
		if err := uow.ChatMessageRepository().Create(ctx, &message); err != nil {
			return apperror.NewPersistence("append_turns", err)
		}
	}

	if err := uow.ChatSessionRepository().Touch(ctx, sessionId, now); err != nil {
		return apperror.NewPersistence("append_turns", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewPersistence("append_turns", err)
	}
	return nil
}

// RewindLastTurn deletes the trailing human/assistant pair and rolls
// updated_at back to the new last message (or session creation time).
// Fewer than two messages is a refusal, not a fault.
func (s *sessionService) RewindLastTurn(ctx context.Context, sessionId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.NewPersistence("rewind_last_turn", err)
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ForUpdate{},
	)
	if err != nil {
		return apperror.NewPersistence("rewind_last_turn", err)
	}
	if session == nil {
		return apperror.NewNotFound("session", sessionId)
	}

	// Highest three orders: two to delete, the third tells us what
	// updated_at rolls back to.
	tail, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "message_order", Desc: true},
		specification.Limit{Count: 3},
	)
	if err != nil {
		return apperror.NewPersistence("rewind_last_turn", err)
	}
	if len(tail) < 2 {
		return apperror.ErrInsufficientHistory
	}

	if err := uow.ChatMessageRepository().DeleteByIds(ctx, []int64{tail[0].Id, tail[1].Id}); err != nil {
		return apperror.NewPersistence("rewind_last_turn", err)
	}

	rollbackTo := session.CreatedAt
	if len(tail) == 3 {
		rollbackTo = tail[2].CreatedAt
	}
	if err := uow.ChatSessionRepository().Touch(ctx, sessionId, rollbackTo); err != nil {
		return apperror.NewPersistence("rewind_last_turn", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewPersistence("rewind_last_turn", err)
	}
	return nil
}

func (s *sessionService) RenameSession(ctx context.Context, sessionId int64, newName string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.ChatSessionRepository().Rename(ctx, sessionId, newName)
	if err != nil {
		if isRecordNotFound(err) {
			return apperror.NewNotFound("session", sessionId)
		}
		return apperror.NewPersistence("rename_session", err)
	}
	return nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionId int64) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.ChatSessionRepository().Delete(ctx, sessionId)
	if err != nil {
		if isRecordNotFound(err) {
			return apperror.NewNotFound("session", sessionId)
		}
		return apperror.NewPersistence("delete_session", err)
	}
	return nil
}

// FindSession returns the most recently updated session matching user,
// type, and a subset match on the context payload; nil when none match.
func (s *sessionService) FindSession(ctx context.Context, userId, sessionType string, contextFilter map[string]any) (*dto.SessionSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByUserID{UserID: userId},
		specification.BySessionType{SessionType: sessionType},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if len(contextFilter) > 0 {
		specs = append(specs, specification.ContextContains{Filter: contextFilter})
	}

	session, err := uow.ChatSessionRepository().FindOne(ctx, specs...)
	if err != nil {
		s.logger.Error("session", "failed to find session", map[string]interface{}{
			"user_id":      userId,
			"session_type": sessionType,
			"error":        err.Error(),
		})
		return nil, nil
	}
	if session == nil {
		return nil, nil
	}
	return &dto.SessionSummaryResponse{
		Id:        session.Id,
		Name:      session.Name,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"nihongo-tutor-be/internal/apperror"
	"nihongo-tutor-be/internal/constant"
	"nihongo-tutor-be/internal/dto"
	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/pkg/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestSessionService() (ISessionService, *fakeUowFactory) {
	factory := newFakeUowFactory()
	return NewSessionService(factory, nopLogger{}), factory
}

func mustCreateSession(t *testing.T, svc ISessionService, userId string) int64 {
	t.Helper()
	res, err := svc.CreateSession(context.Background(), userId, &dto.CreateSessionRequest{
		Name:        "Grammar questions",
		SessionType: constant.SessionTypeGeneral,
	})
	require.NoError(t, err)
	return res.Id
}

func TestCreateSessionUpsertsUser(t *testing.T) {
	svc, factory := newTestSessionService()

	first := mustCreateSession(t, svc, "user-1")
	second := mustCreateSession(t, svc, "user-1")

	assert.NotEqual(t, first, second)
	assert.Len(t, factory.store.users, 1, "repeat user must not create a second row")
}

func TestAppendTurnsAssignsContiguousOrder(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")

	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("こんにちは"),
		chat.Assistant("Hello! こんにちは means hello."),
	}))
	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("What about さようなら?"),
		chat.Assistant("It means goodbye."),
	}))

	history, err := svc.GetHistory(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, history.Messages, 4)
	for i, msg := range history.Messages {
		assert.Equal(t, i+1, msg.Order)
	}
	assert.Equal(t, constant.ChatMessageRoleHuman, history.Messages[0].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, history.Messages[1].Role)
}

func TestAppendTurnsBumpsUpdatedAt(t *testing.T) {
	svc, factory := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")

	before := factory.store.sessions[sessionId].UpdatedAt
	time.Sleep(time.Millisecond)

	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("hi"), chat.Assistant("hello"),
	}))

	assert.True(t, factory.store.sessions[sessionId].UpdatedAt.After(before))
}

func TestAppendTurnsUnknownSession(t *testing.T) {
	svc, _ := newTestSessionService()

	err := svc.AppendTurns(context.Background(), 999, []chat.Turn{chat.Human("hi")})

	assert.True(t, apperror.IsNotFound(err))
}

func TestRewindRemovesLastPair(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")

	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q1"), chat.Assistant("a1"),
	}))
	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q2"), chat.Assistant("a2"),
	}))

	require.NoError(t, svc.RewindLastTurn(ctx, sessionId))

	history, err := svc.GetHistory(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "q1", history.Messages[0].Content)
	assert.Equal(t, "a1", history.Messages[1].Content)
}

func TestRewindRollsUpdatedAtBack(t *testing.T) {
	svc, factory := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")

	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q1"), chat.Assistant("a1"),
	}))
	firstTurnAt := factory.store.sessions[sessionId].UpdatedAt
	time.Sleep(time.Millisecond)
	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q2"), chat.Assistant("a2"),
	}))

	require.NoError(t, svc.RewindLastTurn(ctx, sessionId))

	assert.Equal(t, firstTurnAt, factory.store.sessions[sessionId].UpdatedAt)
}

func TestRewindEmptiedSessionResetsToCreatedAt(t *testing.T) {
	svc, factory := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")

	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q1"), chat.Assistant("a1"),
	}))

	require.NoError(t, svc.RewindLastTurn(ctx, sessionId))

	session := factory.store.sessions[sessionId]
	assert.Equal(t, session.CreatedAt, session.UpdatedAt)

	history, err := svc.GetHistory(ctx, sessionId)
	require.NoError(t, err)
	assert.Empty(t, history.Messages)
}

func TestRewindRefusesShortHistory(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")

	err := svc.RewindLastTurn(ctx, sessionId)
	assert.ErrorIs(t, err, apperror.ErrInsufficientHistory)
}

func TestRewindThenAppendReusesOrders(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")

	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q1"), chat.Assistant("a1"),
	}))
	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q2"), chat.Assistant("a2"),
	}))
	require.NoError(t, svc.RewindLastTurn(ctx, sessionId))
	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q2 corrected"), chat.Assistant("a2 corrected"),
	}))

	history, err := svc.GetHistory(ctx, sessionId)
	require.NoError(t, err)
	require.Len(t, history.Messages, 4)
	assert.Equal(t, 3, history.Messages[2].Order)
	assert.Equal(t, 4, history.Messages[3].Order)
	assert.Equal(t, "q2 corrected", history.Messages[2].Content)
}

func TestRenameUnknownSession(t *testing.T) {
	svc, _ := newTestSessionService()
	err := svc.RenameSession(context.Background(), 42, "New name")
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteSessionRemovesMessages(t *testing.T) {
	svc, factory := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")
	require.NoError(t, svc.AppendTurns(ctx, sessionId, []chat.Turn{
		chat.Human("q1"), chat.Assistant("a1"),
	}))

	require.NoError(t, svc.DeleteSession(ctx, sessionId))

	assert.Empty(t, factory.store.sessions)
	assert.Empty(t, factory.store.messages)
}

func TestDeleteSessionRemovesTaskContexts(t *testing.T) {
	svc, factory := newTestSessionService()
	ctx := context.Background()
	sessionId := mustCreateSession(t, svc, "user-1")
	kept := mustCreateSession(t, svc, "user-1")

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.TaskContextRepository().Upsert(ctx, &entity.TaskContext{
		SessionId: sessionId,
		TaskName:  "planner_preferences",
		Status:    "collecting",
		Payload:   map[string]any{"answers": []any{"N4"}},
	}))
	require.NoError(t, uow.TaskContextRepository().Upsert(ctx, &entity.TaskContext{
		SessionId: kept,
		TaskName:  "planner_preferences",
		Status:    "collecting",
		Payload:   map[string]any{"answers": []any{"N2"}},
	}))

	require.NoError(t, svc.DeleteSession(ctx, sessionId))

	gone, err := uow.TaskContextRepository().Find(ctx, sessionId, "planner_preferences")
	require.NoError(t, err)
	assert.Nil(t, gone, "task contexts must drop with their session")

	survivor, err := uow.TaskContextRepository().Find(ctx, kept, "planner_preferences")
	require.NoError(t, err)
	assert.NotNil(t, survivor, "other sessions' task contexts must survive")
}

func TestFindSessionMatchesContextSubset(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	res, err := svc.CreateSession(ctx, "user-1", &dto.CreateSessionRequest{
		Name:        "N4 study",
		SessionType: constant.SessionTypeStudy,
		Context:     map[string]any{"material_id": "M101", "level": "N4"},
	})
	require.NoError(t, err)

	found, err := svc.FindSession(ctx, "user-1", constant.SessionTypeStudy, map[string]any{"material_id": "M101"})
	require.NoError(t, err)
	require.NotNil(t, found, "subset of stored context must match")
	assert.Equal(t, res.Id, found.Id)

	missed, err := svc.FindSession(ctx, "user-1", constant.SessionTypeStudy, map[string]any{"material_id": "M999"})
	require.NoError(t, err)
	assert.Nil(t, missed)

	wrongType, err := svc.FindSession(ctx, "user-1", constant.SessionTypePlanner, nil)
	require.NoError(t, err)
	assert.Nil(t, wrongType)
}

func TestListSessionsMostRecentFirst(t *testing.T) {
	svc, _ := newTestSessionService()
	ctx := context.Background()

	first := mustCreateSession(t, svc, "user-1")
	second := mustCreateSession(t, svc, "user-1")
	time.Sleep(time.Millisecond)
	require.NoError(t, svc.AppendTurns(ctx, first, []chat.Turn{
		chat.Human("hi"), chat.Assistant("hello"),
	}))

	sessions, err := svc.ListSessions(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, first, sessions[0].Id, "touched session moves to the top")
	assert.Equal(t, second, sessions[1].Id)
}

package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"nihongo-tutor-be/internal/constant"
	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/repository/specification"
	"nihongo-tutor-be/internal/repository/unitofwork"
	"nihongo-tutor-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, database.PoolConfig{
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatSessionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Content Chunk Repository", func(t *testing.T) {
		// Count implies the table and vector column exist
		count, err := uow.ContentChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("ContentChunk count: %d", count)
	})

	t.Run("Transactional Append With Row Lock", func(t *testing.T) {
		ctx := context.Background()
		userId := "integration-" + uuid.NewString()

		err := uow.UserRepository().Upsert(ctx, &entity.User{
			Id:          userId,
			DisplayName: "Integration Test User",
		})
		require.NoError(t, err)

		now := time.Now()
		session := entity.ChatSession{
			UserId:      userId,
			Name:        "Integration session",
			SessionType: constant.SessionTypeGeneral,
			Context:     map[string]any{"material_id": "M-IT"},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, &session))
		defer func() {
			_ = uow.ChatSessionRepository().Delete(ctx, session.Id)
		}()

		// Transaction Test: lock the row, append a pair, bump updated_at
		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))
		defer txUow.Rollback()

		locked, err := txUow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: session.Id},
			specification.ForUpdate{},
		)
		require.NoError(t, err)
		require.NotNil(t, locked)

		maxOrder, err := txUow.ChatMessageRepository().MaxOrder(ctx, session.Id)
		require.NoError(t, err)
		assert.Zero(t, maxOrder)

		pair := []entity.ChatMessage{
			{SessionId: session.Id, Role: constant.ChatMessageRoleHuman, Content: "hello", MessageOrder: 1, CreatedAt: time.Now()},
			{SessionId: session.Id, Role: constant.ChatMessageRoleAssistant, Content: "hi", MessageOrder: 2, CreatedAt: time.Now()},
		}
		for i := range pair {
			require.NoError(t, txUow.ChatMessageRepository().Create(ctx, &pair[i]))
		}
		require.NoError(t, txUow.ChatSessionRepository().Touch(ctx, session.Id, time.Now()))
		require.NoError(t, txUow.Commit())

		messages, err := uow.ChatMessageRepository().FindAll(ctx,
			specification.BySessionID{SessionID: session.Id},
			specification.OrderBy{Field: "message_order", Desc: false},
		)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, 1, messages[0].MessageOrder)
		assert.Equal(t, 2, messages[1].MessageOrder)

		t.Log("Successfully appended a turn pair under a row lock")
	})

	t.Run("Session Delete Cascades To Task Contexts", func(t *testing.T) {
		ctx := context.Background()
		userId := "integration-" + uuid.NewString()

		require.NoError(t, uow.UserRepository().Upsert(ctx, &entity.User{Id: userId, DisplayName: userId}))

		now := time.Now()
		session := entity.ChatSession{
			UserId:      userId,
			Name:        "Cascade session",
			SessionType: constant.SessionTypePlanner,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, &session))

		require.NoError(t, uow.TaskContextRepository().Upsert(ctx, &entity.TaskContext{
			SessionId: session.Id,
			TaskName:  "planner_preferences",
			Status:    "collecting",
			Payload:   map[string]any{"answers": []any{"N4"}},
		}))

		require.NoError(t, uow.ChatSessionRepository().Delete(ctx, session.Id))

		orphan, err := uow.TaskContextRepository().Find(ctx, session.Id, "planner_preferences")
		require.NoError(t, err)
		assert.Nil(t, orphan, "task_contexts row must be removed by the FK cascade")
	})

	t.Run("Context Containment Lookup", func(t *testing.T) {
		ctx := context.Background()
		userId := "integration-" + uuid.NewString()

		require.NoError(t, uow.UserRepository().Upsert(ctx, &entity.User{Id: userId, DisplayName: userId}))

		now := time.Now()
		materialId := fmt.Sprintf("M-%s", uuid.NewString())
		session := entity.ChatSession{
			UserId:      userId,
			Name:        "Containment session",
			SessionType: constant.SessionTypeStudy,
			Context:     map[string]any{"material_id": materialId, "level": "N4"},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, uow.ChatSessionRepository().Create(ctx, &session))
		defer func() {
			_ = uow.ChatSessionRepository().Delete(ctx, session.Id)
		}()

		found, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByUserID{UserID: userId},
			specification.BySessionType{SessionType: constant.SessionTypeStudy},
			specification.ContextContains{Filter: map[string]any{"material_id": materialId}},
		)
		require.NoError(t, err)
		require.NotNil(t, found, "subset filter should match the stored jsonb context")
		assert.Equal(t, session.Id, found.Id)
	})
}

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"nihongo-tutor-be/internal/entity"
	"nihongo-tutor-be/internal/repository/contract"
	"nihongo-tutor-be/internal/repository/specification"
	"nihongo-tutor-be/internal/repository/unitofwork"

	"gorm.io/gorm"
)

// fakeStore is the shared in-memory backing for the fake repositories.
// Spec structs are interpreted by type switch, mirroring what the SQL
// they generate would do.
type fakeStore struct {
	users         map[string]*entity.User
	sessions      map[int64]*entity.ChatSession
	messages      map[int64]*entity.ChatMessage
	taskContexts  map[string]*entity.TaskContext
	nextSessionId int64
	nextMessageId int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[string]*entity.User),
		sessions:     make(map[int64]*entity.ChatSession),
		messages:     make(map[int64]*entity.ChatMessage),
		taskContexts: make(map[string]*entity.TaskContext),
	}
}

func taskKey(sessionId int64, taskName string) string {
	return fmt.Sprintf("%d/%s", sessionId, taskName)
}

type fakeUowFactory struct {
	store *fakeStore
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{store: newFakeStore()}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

func (u *fakeUow) TaskContextRepository() contract.TaskContextRepository {
	return &fakeTaskContextRepo{store: u.store}
}

func (u *fakeUow) ContentChunkRepository() contract.ContentChunkRepository {
	return &fakeChunkRepo{}
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	if _, exists := r.store.users[user.Id]; exists {
		return nil
	}
	stored := *user
	stored.CreatedAt = time.Now()
	r.store.users[user.Id] = &stored
	return nil
}

func (r *fakeUserRepo) FindById(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.store.users)), nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.store.nextSessionId++
	session.Id = r.store.nextSessionId
	stored := *session
	r.store.sessions[session.Id] = &stored
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.store.sessions[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.sessions, id)
	for msgId, msg := range r.store.messages {
		if msg.SessionId == id {
			delete(r.store.messages, msgId)
		}
	}
	for key, tc := range r.store.taskContexts {
		if tc.SessionId == id {
			delete(r.store.taskContexts, key)
		}
	}
	return nil
}

func (r *fakeSessionRepo) Rename(ctx context.Context, id int64, newName string) error {
	session, ok := r.store.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	session.Name = newName
	return nil
}

func (r *fakeSessionRepo) Touch(ctx context.Context, id int64, at time.Time) error {
	session, ok := r.store.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	session.UpdatedAt = at
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	matches := r.filter(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	return r.filter(specs), nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.filter(specs))), nil
}

func (r *fakeSessionRepo) filter(specs []specification.Specification) []*entity.ChatSession {
	var result []*entity.ChatSession
	for _, session := range r.store.sessions {
		result = append(result, session)
	}

	limit := -1
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			result = keepSessions(result, func(e *entity.ChatSession) bool { return e.Id == s.ID })
		case specification.ByUserID:
			result = keepSessions(result, func(e *entity.ChatSession) bool { return e.UserId == s.UserID })
		case specification.BySessionType:
			result = keepSessions(result, func(e *entity.ChatSession) bool { return e.SessionType == s.SessionType })
		case specification.ContextContains:
			result = keepSessions(result, func(e *entity.ChatSession) bool { return containsSubset(e.Context, s.Filter) })
		case specification.OrderBy:
			sort.SliceStable(result, func(i, j int) bool {
				var less bool
				switch s.Field {
				case "updated_at":
					less = result[i].UpdatedAt.Before(result[j].UpdatedAt)
				default:
					less = result[i].Id < result[j].Id
				}
				if s.Desc {
					return !less
				}
				return less
			})
		case specification.Limit:
			limit = s.Count
		case specification.ForUpdate:
			// no-op in memory
		}
	}

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func keepSessions(in []*entity.ChatSession, pred func(*entity.ChatSession) bool) []*entity.ChatSession {
	var out []*entity.ChatSession
	for _, e := range in {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func containsSubset(stored, filter map[string]any) bool {
	for key, want := range filter {
		got, ok := stored[key]
		if !ok || got != want {
			return false
		}
	}
	return true
}

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.store.nextMessageId++
	message.Id = r.store.nextMessageId
	stored := *message
	r.store.messages[message.Id] = &stored
	return nil
}

func (r *fakeMessageRepo) DeleteByIds(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(r.store.messages, id)
	}
	return nil
}

func (r *fakeMessageRepo) MaxOrder(ctx context.Context, sessionId int64) (int, error) {
	max := 0
	for _, msg := range r.store.messages {
		if msg.SessionId == sessionId && msg.MessageOrder > max {
			max = msg.MessageOrder
		}
	}
	return max, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var result []*entity.ChatMessage
	for _, msg := range r.store.messages {
		result = append(result, msg)
	}

	limit := -1
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			var kept []*entity.ChatMessage
			for _, msg := range result {
				if msg.SessionId == s.SessionID {
					kept = append(kept, msg)
				}
			}
			result = kept
		case specification.OrderBy:
			sort.SliceStable(result, func(i, j int) bool {
				less := result[i].MessageOrder < result[j].MessageOrder
				if s.Desc {
					return !less
				}
				return less
			})
		case specification.Limit:
			limit = s.Count
		}
	}

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	msgs, _ := r.FindAll(ctx, specs...)
	return int64(len(msgs)), nil
}

type fakeTaskContextRepo struct {
	store *fakeStore
}

func (r *fakeTaskContextRepo) Upsert(ctx context.Context, taskContext *entity.TaskContext) error {
	stored := *taskContext
	stored.UpdatedAt = time.Now()
	r.store.taskContexts[taskKey(taskContext.SessionId, taskContext.TaskName)] = &stored
	return nil
}

func (r *fakeTaskContextRepo) Find(ctx context.Context, sessionId int64, taskName string) (*entity.TaskContext, error) {
	tc, ok := r.store.taskContexts[taskKey(sessionId, taskName)]
	if !ok {
		return nil, nil
	}
	return tc, nil
}

func (r *fakeTaskContextRepo) Clear(ctx context.Context, sessionId int64, taskName string) error {
	delete(r.store.taskContexts, taskKey(sessionId, taskName))
	return nil
}

type fakeChunkRepo struct{}

func (r *fakeChunkRepo) Search(ctx context.Context, embedding []float32, topK int, filters map[string]string) ([]*entity.ContentChunk, error) {
	return nil, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/store"
	"github.com/google/uuid"
)

// MatchTaskStore is an in-memory store.MatchTaskStore. Each method can be
// overridden through its Fn field; otherwise writes overwrite Tasks by ID the
// way the database does, including the guard that keeps MarkProcessing from
// reverting a terminal task.
type MatchTaskStore struct {
	MarkProcessingFn func(ctx context.Context, task *domain.MatchTask) error
	SaveResultFn     func(ctx context.Context, task *domain.MatchTask) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.MatchTask, error)

	mu    sync.Mutex
	tasks map[uuid.UUID]domain.MatchTask

	// History records every status written, in order
	History []domain.MatchTaskStatus
}

var _ store.MatchTaskStore = (*MatchTaskStore)(nil)

// NewMatchTaskStore creates an empty MatchTaskStore
func NewMatchTaskStore() *MatchTaskStore {
	return &MatchTaskStore{tasks: make(map[uuid.UUID]domain.MatchTask)}
}

// Put seeds the store with a task
func (m *MatchTaskStore) Put(task *domain.MatchTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tasks == nil {
		m.tasks = make(map[uuid.UUID]domain.MatchTask)
	}
	m.tasks[task.ID] = copyTask(task)
}

// MarkProcessing implements store.MatchTaskStore.MarkProcessing
func (m *MatchTaskStore) MarkProcessing(ctx context.Context, task *domain.MatchTask) error {
	if m.MarkProcessingFn != nil {
		return m.MarkProcessingFn(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.History = append(m.History, task.Status)
	if existing, ok := m.tasks[task.ID]; ok && existing.IsTerminal() {
		return nil
	}
	if m.tasks == nil {
		m.tasks = make(map[uuid.UUID]domain.MatchTask)
	}
	m.tasks[task.ID] = copyTask(task)
	return nil
}

// SaveResult implements store.MatchTaskStore.SaveResult
func (m *MatchTaskStore) SaveResult(ctx context.Context, task *domain.MatchTask) error {
	if m.SaveResultFn != nil {
		return m.SaveResultFn(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.History = append(m.History, task.Status)
	if m.tasks == nil {
		m.tasks = make(map[uuid.UUID]domain.MatchTask)
	}
	m.tasks[task.ID] = copyTask(task)
	return nil
}

// GetByID implements store.MatchTaskStore.GetByID
func (m *MatchTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MatchTask, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrMatchTaskNotFound
	}
	out := copyTask(&task)
	return &out, nil
}

// WithTx implements store.MatchTaskStore.WithTx
func (m *MatchTaskStore) WithTx(tx *sql.Tx) store.MatchTaskStore {
	return m
}

// Statuses returns a copy of History
func (m *MatchTaskStore) Statuses() []domain.MatchTaskStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.MatchTaskStatus(nil), m.History...)
}

func copyTask(t *domain.MatchTask) domain.MatchTask {
	out := *t
	out.Recommendations = append([]domain.Recommendation{}, t.Recommendations...)
	return out
}

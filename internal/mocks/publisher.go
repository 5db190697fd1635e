package mocks

import (
	"context"
	"fmt"
	"sync"
)

// MockPublisher implements task.Publisher for testing, keeping every
// published body in order.
type MockPublisher struct {
	// PublishFn allows test cases to mock the Publish behavior
	PublishFn func(ctx context.Context, body []byte) (string, error)

	mu     sync.Mutex
	bodies [][]byte
}

// Publish implements the task.Publisher interface
func (m *MockPublisher) Publish(ctx context.Context, body []byte) (string, error) {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, body)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies = append(m.bodies, append([]byte(nil), body...))
	return fmt.Sprintf("%d-0", len(m.bodies)), nil
}

// Published returns the bodies published so far
func (m *MockPublisher) Published() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.bodies...)
}

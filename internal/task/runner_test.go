package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/foodbridge/match-api/internal/domain"
	"github.com/foodbridge/match-api/internal/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:       2,
		BatchSize:         5,
		VisibilityTimeout: 30 * time.Millisecond,
		ReclaimInterval:   10 * time.Millisecond,
		ErrorBackoff:      10 * time.Millisecond,
	}
}

func TestNewTaskRunnerAppliesDefaults(t *testing.T) {
	runner := NewTaskRunner(newTestQueue(1), HandlerFunc(func(ctx context.Context, d Delivery) error {
		return nil
	}), TaskRunnerConfig{}, nil)

	defaults := DefaultTaskRunnerConfig()
	assert.Equal(t, defaults.BatchSize, runner.config.BatchSize)
	assert.Equal(t, defaults.VisibilityTimeout, runner.config.VisibilityTimeout)
	assert.Equal(t, defaults.ReclaimInterval, runner.config.ReclaimInterval)
	assert.Equal(t, 1, runner.pool.workerCount)
}

func TestTaskRunner_ProcessesAndAcknowledges(t *testing.T) {
	queue := newTestQueue(10)
	var handled atomic.Int32
	runner := NewTaskRunner(queue, HandlerFunc(func(ctx context.Context, d Delivery) error {
		handled.Add(1)
		return nil
	}), fastRunnerConfig(), setupTestLogger())

	require.NoError(t, runner.Start())
	defer runner.Stop()

	for i := 0; i < 4; i++ {
		_, err := queue.Publish(context.Background(), []byte("job"))
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		return handled.Load() == 4 && queue.Pending() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTaskRunner_RedeliversFailedDeliveries(t *testing.T) {
	queue := newTestQueue(10)
	var attempts atomic.Int32
	runner := NewTaskRunner(queue, HandlerFunc(func(ctx context.Context, d Delivery) error {
		if attempts.Add(1) < 3 {
			return errors.New("transient")
		}
		return nil
	}), fastRunnerConfig(), setupTestLogger())

	require.NoError(t, runner.Start())
	defer runner.Stop()

	_, err := queue.Publish(context.Background(), []byte("flaky"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return attempts.Load() >= 3 && queue.Pending() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestTaskRunner_StopIsIdempotent(t *testing.T) {
	runner := NewTaskRunner(newTestQueue(1), HandlerFunc(func(ctx context.Context, d Delivery) error {
		return nil
	}), fastRunnerConfig(), setupTestLogger())

	require.NoError(t, runner.Start())
	runner.Stop()
	runner.Stop()
}

func TestTaskRunner_StartFailsWhenRecoveryFails(t *testing.T) {
	queue := newTestQueue(1)
	require.NoError(t, queue.Close())

	runner := NewTaskRunner(queue, HandlerFunc(func(ctx context.Context, d Delivery) error {
		return nil
	}), fastRunnerConfig(), setupTestLogger())

	err := runner.Start()
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestTaskRunner_MatchEngineEndToEnd(t *testing.T) {
	queue := newTestQueue(10)
	f := newEngineFixture(recipientPool(), mocks.NewMockOracleRecommendingFirst(2), MatchEngineConfig{})
	runner := NewTaskRunner(queue, f.engine, fastRunnerConfig(), setupTestLogger())

	require.NoError(t, runner.Start())
	defer runner.Stop()

	taskID := uuid.New()
	_, err := queue.Publish(context.Background(), matchBody(t, taskID, "Dumplings"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		task, err := f.tasks.GetByID(context.Background(), taskID)
		return err == nil && task.Status == domain.MatchTaskStatusCompleted && len(task.Recommendations) == 2
	}, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return queue.Pending() == 0 }, time.Second, 10*time.Millisecond)
}

package redisqueue

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDelivery(t *testing.T) {
	t.Parallel()

	entry := rueidis.XRangeEntry{ID: "1700000000000-0", FieldValues: map[string]string{bodyField: `{"task_id":"x"}`}}

	d := toDelivery(entry, 3)
	assert.Equal(t, "1700000000000-0", d.ID)
	assert.Equal(t, []byte(`{"task_id":"x"}`), d.Body)
	assert.Equal(t, 3, d.Attempts)

	assert.Equal(t, 1, toDelivery(entry, 0).Attempts, "unknown counts report a single attempt")
}

func TestDefaultConsumerName(t *testing.T) {
	t.Parallel()

	name := defaultConsumerName()
	assert.NotEmpty(t, name)
	assert.True(t, strings.Contains(name, "-"))
	assert.Equal(t, name, defaultConsumerName(), "stable within a process")
}

func TestNewValidatesArguments(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), nil, Config{Stream: "s", Group: "g"}, nil)
	assert.Error(t, err)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := NewClient(addr)
		require.NoError(t, err)
		defer client.Close()

		_, err = New(context.Background(), client, Config{Stream: "", Group: "g"}, nil)
		assert.Error(t, err)
	}
}

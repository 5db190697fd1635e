package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, opts.migrate)

	for _, cmd := range []string{"up", "down", "status", "version"} {
		opts, err := parseFlags([]string{"-migrate", cmd})
		require.NoError(t, err)
		assert.Equal(t, cmd, opts.migrate)
	}

	_, err = parseFlags([]string{"-migrate", "redo-everything"})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-port", "9"})
	assert.Error(t, err)
}

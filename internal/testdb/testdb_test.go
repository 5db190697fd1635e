//go:build integration

package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskURL(t *testing.T) {
	assert.Equal(t, "postgres://app:xxxxx@db:5432/match", maskURL("postgres://app:hunter2@db:5432/match"))
	assert.Equal(t, "postgres://db:5432/match", maskURL("postgres://db:5432/match"))
}

func TestDatabaseURL(t *testing.T) {
	for _, name := range URLEnvVars {
		t.Setenv(name, "")
	}
	assert.Empty(t, DatabaseURL())

	t.Setenv("DATABASE_URL", "postgres://fallback")
	t.Setenv("FOODBRIDGE_TEST_DATABASE_URL", "postgres://preferred")
	assert.Equal(t, "postgres://preferred", DatabaseURL())
}

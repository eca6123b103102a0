package database

import (
	"context"
	"testing"

	"github.com/locallibrary/catalog/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := config.NewForTest()

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	var enabled int
	err = db.NewRaw("PRAGMA foreign_keys").Scan(context.Background(), &enabled)
	require.NoError(t, err)
	assert.Equal(t, 1, enabled)
}

func TestNew_Debug(t *testing.T) {
	cfg := config.NewForTest()
	cfg.DatabaseDebug = true

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	_, err = db.ExecContext(WithLogging(context.Background()), "SELECT 1")
	require.NoError(t, err)
}

func TestLoggingEnabled(t *testing.T) {
	ctx := context.Background()
	assert.False(t, LoggingEnabled(ctx))
	assert.True(t, LoggingEnabled(WithLogging(ctx)))
}

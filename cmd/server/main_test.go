package main

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/thermochef/backend/config"
)

type syncCountingCore struct {
	zapcore.Core
	syncs int
}

func (c *syncCountingCore) Sync() error {
	c.syncs++
	return c.Core.Sync()
}

func TestExitCode(t *testing.T) {
	t.Run("failure is logged and flushed", func(t *testing.T) {
		observed, logs := observer.New(zapcore.InfoLevel)
		core := &syncCountingCore{Core: observed}

		code := exitCode(zap.New(core), errors.New("listen tcp :8080: address already in use"))

		assert.Equal(t, 1, code)
		assert.Equal(t, 1, core.syncs)
		entries := logs.FilterMessage("server stopped").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	})

	t.Run("clean stop still flushes", func(t *testing.T) {
		observed, logs := observer.New(zapcore.InfoLevel)
		core := &syncCountingCore{Core: observed}

		assert.Equal(t, 0, exitCode(zap.New(core), nil))
		assert.Equal(t, 1, core.syncs)
		assert.Zero(t, logs.Len())
	})
}

func TestRun_MissingTablesFile(t *testing.T) {
	cfg := &config.Config{}
	cfg.Tables.Path = filepath.Join(t.TempDir(), "missing.yaml")

	err := run(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load tables")
}

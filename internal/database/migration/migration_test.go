package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := NewLogger(zap.New(core), true)

	logger.Printf("applied %d", 3)

	assert.True(t, logger.Verbose())
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, "DB Migration: applied 3", logs.All()[0].Message)
}

func TestMigrateRejectsUnknownSource(t *testing.T) {
	err := Migrate("postgres://localhost:1/none?sslmode=disable", "nosuchscheme://migrations", false, zap.NewNop())
	assert.Error(t, err)
}

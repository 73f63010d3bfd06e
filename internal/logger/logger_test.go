package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDoesNotPanic(t *testing.T) {
	require.NotPanics(t, Init)
	assert.NotNil(t, logger)

	// logging through the facade must be safe after Init
	require.NotPanics(t, func() {
		Info("info message", "key", "value")
		Infof("formatted %s", "message")
		Debug("debug message")
		Error("error message", "err", "boom")
	})
	Sync()
}

func TestLazyInit(t *testing.T) {
	logger = nil
	require.NotPanics(t, func() {
		Info("first call initializes the logger")
	})
	assert.NotNil(t, logger)
}

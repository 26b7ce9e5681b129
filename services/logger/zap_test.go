package logsvc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trezcool/agenda/core/session"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Info("logged in", session.Identity{DisplayName: "Teacher", Role: session.RoleTeacher})
	logger.Warn("login failed", errors.New("invalid credentials"), map[string]interface{}{"name": "admin", "attempt": 2})
	logger.Debug("odd", 42, errors.New("e1"), errors.New("e2"))

	entries := logs.AllUntimed()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, "logged in", entries[0].Message)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, map[string]interface{}{"user": "Teacher", "role": "teacher"}, entries[0].ContextMap())

		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, map[string]interface{}{
			"error":   "invalid credentials",
			"name":    "admin",
			"attempt": int64(2),
		}, entries[1].ContextMap())

		assert.Equal(t, map[string]interface{}{"arg0": int64(42), "error": "e1", "error1": "e2"}, entries[2].ContextMap())
	}
}

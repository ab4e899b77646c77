package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		env, level string
		want       zapcore.Level
	}{
		{"prod", "", zapcore.InfoLevel},
		{"dev", "", zapcore.DebugLevel},
		{"production", "warn", zapcore.WarnLevel},
		{"dev", "loud", zapcore.DebugLevel},
	}
	for _, tc := range cases {
		t.Run(tc.env+"/"+tc.level, func(t *testing.T) {
			l := New(tc.env, tc.level, "test")
			assert.True(t, l.Core().Enabled(tc.want))
			assert.False(t, l.Core().Enabled(tc.want-1))
		})
	}
}

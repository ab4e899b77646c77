package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the logger for one of the service's binaries.  prod and
// production get JSON output at info; anything else gets the colored console
// encoder at debug.  level, when it parses, overrides the default level.
// Every entry carries the component name.
func New(env, level, component string) *zap.Logger {
	var cfg zap.Config
	switch env {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.OutputPaths = []string{"stdout"}
	if lvl, err := zap.ParseAtomicLevel(level); level != "" && err == nil {
		cfg.Level = lvl
	}

	logger, err := cfg.Build(zap.Fields(zap.String("component", component)))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

package logginglevel

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//nolint:gochecknoglobals // a single mutable logging level shared between the CLI and the logger
var Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

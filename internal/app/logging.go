package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// withFileLog tees lg into a rotating JSON file at the same level. The
// returned func closes the file.
func withFileLog(lg *zap.Logger, cfg LogConfig) (*zap.Logger, func() error) {
	if cfg.File == "" {
		return lg, func() error { return nil }
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	lg = lg.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			c,
		))
	}))
	return lg, rotator.Close
}

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds a zap logger for the given format (console or json) and level.
// Logs go to stdout unless other output paths are given; the commands that
// print results on stdout log to stderr.
func Init(format string, logLevel string, outputPaths ...string) *zap.Logger {
	lvl := zapcore.InfoLevel
	level, err := zapcore.ParseLevel(logLevel)
	if err == nil {
		lvl = level
	}

	if len(outputPaths) == 0 {
		outputPaths = []string{"stdout"}
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "severity",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if format == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	loggerCfg := &zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         format,
		EncoderConfig:    encoderCfg,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	plain, err := loggerCfg.Build(zap.AddStacktrace(zap.DPanicLevel))
	if err != nil {
		panic(err)
	}

	return plain
}

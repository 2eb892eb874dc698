package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init configures the process-wide logger: JSON on stdout, level from
// LOG_LEVEL (default info).
func Init() {
	level := zapcore.InfoLevel
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(os.Stdout),
		level,
	)

	log = zap.New(core)
}

func zapFields(fields map[string]any) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

func Debug(msg string, fields map[string]any) { log.Debug(msg, zapFields(fields)...) }
func Info(msg string, fields map[string]any)  { log.Info(msg, zapFields(fields)...) }
func Warn(msg string, fields map[string]any)  { log.Warn(msg, zapFields(fields)...) }
func Error(msg string, fields map[string]any) { log.Error(msg, zapFields(fields)...) }

func Fatal(msg string, fields map[string]any) {
	log.Fatal(msg, zapFields(fields)...)
}

package logger

import (
	"os"

	"madrasa_backend/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the process-wide logger, set once by InitLogger before anything
// else runs.
var Log *zap.Logger

func levelFor(mode string) zapcore.Level {
	if mode == "debug" {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// InitLogger tees a rotated JSON file core with a plain console core. The
// level follows the gin server mode.
func InitLogger(cfg *config.Config) {
	level := levelFor(cfg.Server.Mode)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	rotated := &lumberjack.Logger{
		Filename:   "logs/madrasa.log",
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotated), level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level),
	)

	Log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

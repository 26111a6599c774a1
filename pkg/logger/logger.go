// Package logger builds the zap loggers used across the service.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options tunes logger construction. The zero value logs to stdout only.
type Options struct {
	Level string
	// File, when set, receives a copy of every entry with size-based rotation.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewNamed returns a logger named after the service. Development mode uses
// the human-readable console encoder.
func NewNamed(appEnv, service string) (*zap.Logger, error) {
	return New(appEnv, service, Options{})
}

// New returns a logger for appEnv, optionally tee'd into a rotating file.
func New(appEnv, service string, opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, err
		}
	}

	var encoder zapcore.Encoder
	if appEnv == "development" {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
		if opts.Level == "" {
			level.SetLevel(zapcore.DebugLevel)
		}
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 50),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   true,
		}
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		Named(service), nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

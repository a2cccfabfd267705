// Package logging builds the process-wide zap.Logger: a rotating file
// sink alongside stdout, per spec.md's ambient logging requirements.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileName  = "solr_proxy.log"
	maxSizeMB    = 5
	maxBackups   = 5
	maxAgeInDays = 30
)

// New builds a zap.Logger that writes JSON-encoded entries to a rotating
// file under logDir and console-encoded entries to stdout.
func New(logDir string) (*zap.Logger, error) {
	fileSink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeInDays,
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), fileSink, zapcore.InfoLevel),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stdout), zapcore.InfoLevel),
	)

	return zap.New(core, zap.AddCaller()), nil
}

package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tessob/wasmgate/errors"
)

// NewLogger builds the process logger from the configuration. Output
// goes to stdout, and additionally to a size-rotated file when
// log_file is set.
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Config("log_level "+c.LogLevel, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	syncer := zapcore.AddSync(os.Stdout)
	if c.LogFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
		}
		syncer = zapcore.NewMultiWriteSyncer(syncer, zapcore.AddSync(rotated))
	}

	core := zapcore.NewCore(encoder, syncer, level)
	return zap.New(core, zap.AddCaller()), nil
}

package rplog

import (
	"io"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewStdoutAppender builds a console-style core writing to stdout at the
// given level.
func NewStdoutAppender(level zapcore.Level) zapcore.Core {
	return newConsoleCore(os.Stdout, level)
}

// NewWriterAppender builds a console-style core writing to the given writer.
func NewWriterAppender(w io.Writer, level zapcore.Level) zapcore.Core {
	return newConsoleCore(w, level)
}

// NewRotatingFileAppender builds a core that writes JSON-encoded entries to a
// rotated log file. Restarting the process with the same filename appends to
// the existing file; a file is rotated out once it reaches MaxSize.
func NewRotatingFileAppender(filename string, level zapcore.Level) (zapcore.Core, io.Closer) {
	logger := &lumberjack.Logger{
		Filename: filename,
		MaxSize:  64, // megabytes
		MaxAge:   30, // days
	}
	enc := zapcore.NewJSONEncoder(encoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(logger), level)
	return core, logger
}

func newConsoleCore(w io.Writer, level zapcore.Level) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(encoderConfig())
	return zapcore.NewCore(enc, zapcore.AddSync(w), level)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	return cfg
}

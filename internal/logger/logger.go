package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the log file, relative to the working directory.
const DefaultPath = "logs/sketch.txt"

// maxLines bounds the in-memory history shown by the console.
const maxLines = 500

// Logger writes structured entries to a log file through zap and keeps a short, timestamped
// plain-text history in memory for the on-screen console.
type Logger struct {
	mu    sync.Mutex
	lines []string
	z     *zap.Logger
	file  *os.File
}

// New opens (appending) the log file at path, creating its directory. An empty path keeps
// entries in memory only.
func New(path string) (*Logger, error) {
	l := &Logger{lines: make([]string, 0, 64)}
	if path == "" {
		l.z = zap.NewNop()
		return l, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), zap.DebugLevel)
	l.z = zap.New(core)
	l.file = f
	return l, nil
}

// Info records an informational entry.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.z.Info(msg, fields...)
	l.remember(msg, fields)
}

// Error records err with msg. A nil err is logged as a plain error entry.
func (l *Logger) Error(msg string, err error, fields ...zap.Field) {
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.z.Error(msg, fields...)
	l.remember("error: "+msg, fields)
}

// Log records a raw console line (e.g. typed input).
func (l *Logger) Log(line string) {
	l.Info(line)
}

// Lines returns a copy of the in-memory history, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.z.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) remember(msg string, fields []zap.Field) {
	line := "[" + time.Now().Format("15:04:05") + "] " + msg
	if len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
		}
		for _, f := range fields {
			if v, ok := enc.Fields[f.Key]; ok {
				line += " " + f.Key + "=" + fmt.Sprint(v)
			}
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
}

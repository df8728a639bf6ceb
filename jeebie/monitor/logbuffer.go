package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogEntry represents a single log message with metadata
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// LogBuffer is a thread-safe circular buffer for log entries
type LogBuffer struct {
	entries []LogEntry
	size    int
	index   int
	count   int
	mutex   sync.RWMutex
}

// NewLogBuffer creates a new log buffer with the specified capacity
func NewLogBuffer(size int) *LogBuffer {
	return &LogBuffer{
		entries: make([]LogEntry, size),
		size:    size,
	}
}

// Add inserts a new log entry into the buffer
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.entries[lb.index] = entry
	lb.index = (lb.index + 1) % lb.size
	if lb.count < lb.size {
		lb.count++
	}
}

// GetRecent returns the most recent log entries, newest first
func (lb *LogBuffer) GetRecent(maxCount int) []LogEntry {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()

	if lb.count == 0 {
		return nil
	}

	count := lb.count
	if maxCount > 0 && maxCount < count {
		count = maxCount
	}

	result := make([]LogEntry, count)
	for i := 0; i < count; i++ {
		entryIndex := (lb.index - 1 - i + lb.size) % lb.size
		result[i] = lb.entries[entryIndex]
	}

	return result
}

// Clear removes all entries from the buffer
func (lb *LogBuffer) Clear() {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.count = 0
	lb.index = 0
}

// LogBufferHandler is a slog.Handler that captures logs to a LogBuffer
type LogBufferHandler struct {
	buffer *LogBuffer
	level  slog.Leveler
	prefix string // pre-rendered attributes from WithAttrs
	group  string
}

// NewLogBufferHandler creates a new handler that writes to the given buffer
func NewLogBufferHandler(buffer *LogBuffer, level slog.Leveler) *LogBufferHandler {
	return &LogBufferHandler{
		buffer: buffer,
		level:  level,
	}
}

// Enabled reports whether the handler handles records at the given level
func (h *LogBufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders the record as "msg key=value ..." and stores it.
func (h *LogBufferHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)
	sb.WriteString(h.prefix)

	record.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&sb, a)
		return true
	})

	h.buffer.Add(LogEntry{
		Time:    record.Time,
		Level:   record.Level,
		Message: sb.String(),
	})
	return nil
}

func (h *LogBufferHandler) appendAttr(sb *strings.Builder, a slog.Attr) {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value.Resolve())
}

// WithAttrs returns a handler that renders attrs on every record.
func (h *LogBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	var sb strings.Builder
	sb.WriteString(h.prefix)
	for _, a := range attrs {
		h.appendAttr(&sb, a)
	}
	clone.prefix = sb.String()
	return &clone
}

// WithGroup returns a handler that qualifies keys with name.
func (h *LogBufferHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

// FormatLogEntry formats a log entry for display
func FormatLogEntry(entry LogEntry) string {
	levelStr := ""
	switch entry.Level {
	case slog.LevelDebug:
		levelStr = "DBG"
	case slog.LevelInfo:
		levelStr = "INF"
	case slog.LevelWarn:
		levelStr = "WRN"
	case slog.LevelError:
		levelStr = "ERR"
	default:
		levelStr = "???"
	}

	timeStr := entry.Time.Format("15:04:05")
	return fmt.Sprintf("%s [%s] %s", timeStr, levelStr, entry.Message)
}

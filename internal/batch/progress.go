package batch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressCallback is the asynchronous notification interface for batch
// runs. OnProgress fires exactly once per item, after the item reached a
// terminal status; OnComplete fires once, after the last OnProgress.
type ProgressCallback interface {
	// OnStart is called when a run begins with the total item count.
	OnStart(total int)

	// OnProgress is called after each item completes or fails.
	OnProgress(completed, total int, sourceID string)

	// OnItemError is called when an item's OCR invocation failed, before
	// the corresponding OnProgress.
	OnItemError(sourceID string, err error)

	// OnComplete is called once with the final result.
	OnComplete(result *Result)
}

// NoOpProgressCallback implements ProgressCallback but does nothing.
type NoOpProgressCallback struct{}

func (NoOpProgressCallback) OnStart(total int)                           {}
func (NoOpProgressCallback) OnProgress(completed, total int, src string) {}
func (NoOpProgressCallback) OnItemError(src string, err error)           {}
func (NoOpProgressCallback) OnComplete(result *Result)                   {}

// ConsoleProgressCallback draws a progress bar on the console.
type ConsoleProgressCallback struct {
	writer    io.Writer
	prefix    string
	width     int
	mutex     sync.Mutex
	startTime time.Time
}

// NewConsoleProgressCallback creates a console progress reporter.
func NewConsoleProgressCallback(writer io.Writer, prefix string) *ConsoleProgressCallback {
	if writer == nil {
		writer = os.Stderr
	}
	return &ConsoleProgressCallback{writer: writer, prefix: prefix, width: 40}
}

func (c *ConsoleProgressCallback) OnStart(total int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.startTime = time.Now()
	_, _ = fmt.Fprintf(c.writer, "%s0/%d (0.0%%)\n", c.prefix, total)
}

func (c *ConsoleProgressCallback) OnProgress(completed, total int, sourceID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if total == 0 {
		return
	}
	percent := float64(completed) / float64(total) * 100.0
	filled := c.width * completed / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", c.width-filled)
	_, _ = fmt.Fprintf(c.writer, "\r%s[%s] %d/%d (%.1f%%) %s", c.prefix, bar, completed, total, percent, sourceID)
}

func (c *ConsoleProgressCallback) OnItemError(sourceID string, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	_, _ = fmt.Fprintf(c.writer, "\n%sError on %s: %v\n", c.prefix, sourceID, err)
}

func (c *ConsoleProgressCallback) OnComplete(result *Result) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	_, _ = fmt.Fprintf(c.writer, "\n%s%s in %v (%d ok, %d failed)\n",
		c.prefix, result.State, result.Duration.Round(time.Millisecond),
		result.Succeeded, result.Failed)
}

// LogProgressCallback logs batch progress using slog.
type LogProgressCallback struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogProgressCallback creates a log-based progress reporter.
func NewLogProgressCallback(logger *slog.Logger, level slog.Level) *LogProgressCallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogProgressCallback{logger: logger, level: level}
}

func (l *LogProgressCallback) OnStart(total int) {
	l.logger.Log(nil, l.level, "batch started", "total", total)
}

func (l *LogProgressCallback) OnProgress(completed, total int, sourceID string) {
	l.logger.Log(nil, l.level, "batch progress",
		"completed", completed, "total", total, "source", sourceID)
}

func (l *LogProgressCallback) OnItemError(sourceID string, err error) {
	l.logger.Log(nil, slog.LevelError, "batch item failed", "source", sourceID, "error", err)
}

func (l *LogProgressCallback) OnComplete(result *Result) {
	l.logger.Log(nil, l.level, "batch complete",
		"run_id", result.RunID,
		"state", result.State.String(),
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"duration", result.Duration.Round(time.Millisecond),
	)
}

// MultiProgressCallback fans notifications out to several callbacks.
type MultiProgressCallback struct {
	callbacks []ProgressCallback
}

// NewMultiProgressCallback creates a callback reporting to every argument.
func NewMultiProgressCallback(callbacks ...ProgressCallback) *MultiProgressCallback {
	return &MultiProgressCallback{callbacks: callbacks}
}

// Add registers another callback.
func (m *MultiProgressCallback) Add(cb ProgressCallback) {
	m.callbacks = append(m.callbacks, cb)
}

func (m *MultiProgressCallback) OnStart(total int) {
	for _, cb := range m.callbacks {
		cb.OnStart(total)
	}
}

func (m *MultiProgressCallback) OnProgress(completed, total int, sourceID string) {
	for _, cb := range m.callbacks {
		cb.OnProgress(completed, total, sourceID)
	}
}

func (m *MultiProgressCallback) OnItemError(sourceID string, err error) {
	for _, cb := range m.callbacks {
		cb.OnItemError(sourceID, err)
	}
}

func (m *MultiProgressCallback) OnComplete(result *Result) {
	for _, cb := range m.callbacks {
		cb.OnComplete(result)
	}
}

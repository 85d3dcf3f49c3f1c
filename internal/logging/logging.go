// Package logging is the component-tagged logger shared by the host and
// the asset/audio loaders.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// WriterLogger writes one line per entry. Loader goroutines log
// concurrently with the loop, so writes are serialized.
type WriterLogger struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
	now   func() time.Time
}

// New returns a logger writing to w. With quiet set, Infof is dropped and
// only errors are written.
func New(w io.Writer, quiet bool) *WriterLogger {
	return &WriterLogger{w: w, quiet: quiet, now: time.Now}
}

func (l *WriterLogger) Infof(component string, format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.write("INFO", component, format, args...)
}

func (l *WriterLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l *WriterLogger) write(level, component, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, l.now().Format(time.RFC3339)+" ["+level+"] "+component+": "+msg+"\n")
}

// Open returns a logger appending to the file at path, or writing to
// stderr when path is empty or cannot be opened. The returned close func
// is always safe to call.
func Open(path string, quiet bool) (*WriterLogger, func() error) {
	if path == "" {
		return New(os.Stderr, quiet), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		l := New(os.Stderr, quiet)
		l.Errorf("log", "open %s: %v", path, err)
		return l, func() error { return nil }
	}
	return New(f, quiet), f.Close
}

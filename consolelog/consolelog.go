package consolelog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/zaolin/conshim/internal/compress"
)

const (
	sessionSep = "================================================================================"
	timeLayout = "2006-01-02T15:04:05.000Z"
)

// Event types for structured logging
type Event string

const (
	EventSessionStart Event = "SESSION_START"
	EventConsole      Event = "CONSOLE"
	EventDebug        Event = "DEBUG"
	EventArchived     Event = "ARCHIVED"
)

var (
	logFile     *os.File
	logMu       sync.Mutex
	initialized bool
)

// Init opens the console log at path in append mode and writes the session
// header. Calling Init again before Close is a no-op.
func Init(path string) error {
	logMu.Lock()
	defer logMu.Unlock()

	if initialized {
		return nil
	}

	var err error
	logFile, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND|os.O_SYNC, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	sessionTime := time.Now().UTC()
	header := fmt.Sprintf("\n%s\nCONSOLE LOG - %s\n%s\n\n",
		sessionSep,
		sessionTime.Format(time.RFC3339),
		sessionSep)
	header += formatLine(sessionTime, EventSessionStart, "pid", strconv.Itoa(os.Getpid()))

	if _, err := logFile.WriteString(header); err != nil {
		logFile.Close()
		logFile = nil
		return fmt.Errorf("write header: %w", err)
	}

	initialized = true
	return nil
}

// Log writes an event with optional key-value data.
// Example: Log(EventConsole, "msg", "system ready")
func Log(event Event, kvPairs ...string) error {
	logMu.Lock()
	defer logMu.Unlock()
	return writeLocked(event, kvPairs...)
}

// writeLocked appends one line; logMu must be held
func writeLocked(event Event, kvPairs ...string) error {
	if logFile == nil {
		return fmt.Errorf("log not initialized")
	}

	if _, err := logFile.WriteString(formatLine(time.Now(), event, kvPairs...)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Hook adapts Log to the console log hook signature
func Hook(debug bool, message string) {
	message = strings.TrimSuffix(message, "\n")
	if message == "" {
		return
	}
	event := EventConsole
	if debug {
		event = EventDebug
	}
	_ = Log(event, "msg", message)
}

// Close flushes and closes the log file
func Close() error {
	logMu.Lock()
	defer logMu.Unlock()

	if logFile == nil {
		return nil
	}

	syncErr := logFile.Sync()
	closeErr := logFile.Close()
	logFile = nil
	initialized = false

	if syncErr != nil {
		return fmt.Errorf("sync log: %w", syncErr)
	}
	return closeErr
}

func formatLine(ts time.Time, event Event, kvPairs ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", ts.UTC().Format(timeLayout), event)

	if len(kvPairs) >= 2 {
		b.WriteString(":")
		for i := 0; i+1 < len(kvPairs); i += 2 {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(&b, " %s=%s", kvPairs[i], quoteValue(kvPairs[i+1]))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// quoteValue keeps every entry on one line and unambiguous
func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " ,=\"\\") || strings.IndexFunc(v, notPrint) >= 0 {
		return strconv.Quote(v)
	}
	return v
}

func notPrint(r rune) bool {
	return !unicode.IsPrint(r)
}

// Entry is one parsed log line
type Entry struct {
	Time   time.Time
	Event  Event
	Fields string
}

// Message returns the unquoted msg field, if present
func (e Entry) Message() (string, bool) {
	const key = "msg="
	idx := strings.Index(e.Fields, key)
	if idx < 0 {
		return "", false
	}
	raw := e.Fields[idx+len(key):]
	if strings.HasPrefix(raw, "\"") {
		v, err := strconv.QuotedPrefix(raw)
		if err != nil {
			return "", false
		}
		s, err := strconv.Unquote(v)
		if err != nil {
			return "", false
		}
		return s, true
	}
	if end := strings.Index(raw, ","); end >= 0 {
		raw = raw[:end]
	}
	return raw, true
}

// ParseLine parses a line written by Log. Session headers, separators and
// blank lines are rejected.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "[") {
		return Entry{}, false
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return Entry{}, false
	}
	ts, err := time.Parse(timeLayout, line[1:end])
	if err != nil {
		return Entry{}, false
	}

	rest := line[end+2:]
	event, fields, _ := strings.Cut(rest, ":")
	if event == "" {
		return Entry{}, false
	}
	return Entry{
		Time:   ts,
		Event:  Event(event),
		Fields: strings.TrimPrefix(fields, " "),
	}, true
}

// Archive compresses the log at path into path+extension, truncates the
// original and appends an ARCHIVED marker to it. Returns the archive path.
// The log mutex is held throughout so no Log call can land between the
// copy and the truncate.
func Archive(path, algorithm string) (string, error) {
	logMu.Lock()
	defer logMu.Unlock()

	dstPath, err := archiveFile(path, algorithm)
	if err != nil {
		return "", err
	}

	if logFile != nil && sameFile(logFile, path) {
		if err := writeLocked(EventArchived, "to", dstPath); err != nil {
			return "", err
		}
		return dstPath, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("reopen log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(formatLine(time.Now(), EventArchived, "to", dstPath)); err != nil {
		return "", fmt.Errorf("write log: %w", err)
	}
	return dstPath, f.Close()
}

func archiveFile(path, algorithm string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open log: %w", err)
	}
	defer src.Close()

	dstPath := path + compress.Extension(algorithm)
	if dstPath == path {
		dstPath = path + ".1"
	}

	dst, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}

	w, err := compress.NewWriter(dst, algorithm)
	if err != nil {
		dst.Close()
		return "", fmt.Errorf("create compressor: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		dst.Close()
		return "", fmt.Errorf("compress log: %w", err)
	}
	if err := w.Close(); err != nil {
		dst.Close()
		return "", fmt.Errorf("finish archive: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close archive: %w", err)
	}

	if err := os.Truncate(path, 0); err != nil {
		return "", fmt.Errorf("truncate log: %w", err)
	}
	return dstPath, nil
}

func sameFile(f *os.File, path string) bool {
	a, err := f.Stat()
	if err != nil {
		return false
	}
	b, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}

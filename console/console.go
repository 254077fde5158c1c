package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/zaolin/conshim/internal/buildtags"
)

// OutputFunc is the printf-style host function that console output is
// forwarded to.
type OutputFunc func(debug bool, format string, args ...any)

// LogFunc receives every message a Console lets through its debug gate,
// including messages written while the console is suppressed.
type LogFunc func(debug bool, message string)

// Console writes formatted output to a writer and gates debug messages
// on its debug level.
type Console struct {
	mu         sync.Mutex
	out        io.Writer
	level      DebugLevel
	suppressed bool
	prefix     string
	color      bool
	debugStyle lipgloss.Style
	logFunc    LogFunc
}

// Option configures a Console
type Option func(*Console)

// WithDebugLevel sets the initial debug level
func WithDebugLevel(level DebugLevel) Option {
	return func(c *Console) { c.level = level }
}

// WithDebugPrefix prepends prefix to every debug message
func WithDebugPrefix(prefix string) Option {
	return func(c *Console) { c.prefix = prefix }
}

// WithDebugColor sets the foreground color used for debug messages on a
// terminal. Accepts anything lipgloss.Color does ("241", "#888888").
func WithDebugColor(color string) Option {
	return func(c *Console) {
		if color != "" {
			c.debugStyle = c.debugStyle.Foreground(lipgloss.Color(color))
		}
	}
}

// WithLogFunc installs a log hook
func WithLogFunc(fn LogFunc) Option {
	return func(c *Console) { c.logFunc = fn }
}

// New creates a console writing to w. Debug output is styled only when w
// is a terminal.
func New(w io.Writer, opts ...Option) *Console {
	r := lipgloss.NewRenderer(w)
	c := &Console{
		out:   w,
		color: isTerminal(w),
		debugStyle: r.NewStyle().
			Foreground(lipgloss.Color("241")).
			TabWidth(lipgloss.NoTabConversion),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Output formats according to format and writes the result verbatim.
// Debug messages are dropped while the debug level is DebugOff.
func (c *Console) Output(debug bool, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if debug && c.level < DebugBasic {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if debug && c.prefix != "" {
		msg = c.prefix + msg
	}

	if !c.suppressed && c.out != nil {
		text := msg
		if debug && c.color {
			text = c.renderDebug(msg)
		}
		_, _ = io.WriteString(c.out, text)
	}

	if c.logFunc != nil {
		c.logFunc(debug, msg)
	}
}

// OutputStr writes msg without interpreting it as a format string
func (c *Console) OutputStr(debug bool, msg string) {
	c.Output(debug, "%s", msg)
}

// Print writes normal output
func (c *Console) Print(format string, args ...any) {
	c.Output(false, format, args...)
}

// DebugPrint writes debug output
func (c *Console) DebugPrint(format string, args ...any) {
	c.Output(true, format, args...)
}

// SetDebugLevel changes the debug level
func (c *Console) SetDebugLevel(level DebugLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

// DebugLevel returns the current debug level
func (c *Console) DebugLevel() DebugLevel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

// SetSuppressed stops (or resumes) writes to the underlying writer.
// The log hook keeps receiving messages while suppressed.
func (c *Console) SetSuppressed(suppressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suppressed = suppressed
}

// SetLogFunc replaces the log hook. Pass nil to remove it
func (c *Console) SetLogFunc(fn LogFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logFunc = fn
}

// renderDebug styles each line on its own so line breaks survive
// untouched; lipgloss pads multi-line blocks to a common width.
func (c *Console) renderDebug(msg string) string {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = c.debugStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

var (
	std      = New(os.Stdout, WithDebugLevel(DebugLevel(buildtags.DefaultDebugLevel)))
	outputFn OutputFunc
	outputMu sync.RWMutex
)

// Default returns the package-level console
func Default() *Console {
	return std
}

// SetOutputFunc installs the host function used by Output and OutputStr.
// Pass nil to restore the default console.
func SetOutputFunc(fn OutputFunc) {
	outputMu.Lock()
	defer outputMu.Unlock()
	outputFn = fn
}

func current() OutputFunc {
	outputMu.RLock()
	fn := outputFn
	outputMu.RUnlock()

	if fn == nil {
		return std.Output
	}
	return fn
}

// Output forwards to the installed host function
func Output(debug bool, format string, args ...any) {
	current()(debug, format, args...)
}

// OutputStr forwards msg to the installed host function with a fixed "%s"
// format, so text containing verbs is printed as-is.
func OutputStr(debug bool, msg string) {
	current()(debug, "%s", msg)
}

// Print outputs normal text through the installed host function
func Print(format string, args ...any) {
	Output(false, format, args...)
}

// DebugPrint outputs debug text through the installed host function
func DebugPrint(format string, args ...any) {
	Output(true, format, args...)
}

// SetDebugLevel sets the debug level of the default console
func SetDebugLevel(level DebugLevel) {
	std.SetDebugLevel(level)
}

// GetDebugLevel returns the debug level of the default console
func GetDebugLevel() DebugLevel {
	return std.DebugLevel()
}

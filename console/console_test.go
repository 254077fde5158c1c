package console

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/zaolin/conshim/internal/buildtags"
)

type call struct {
	debug  bool
	format string
	args   []any
}

func recordOutput(t *testing.T) *[]call {
	t.Helper()
	var calls []call
	SetOutputFunc(func(debug bool, format string, args ...any) {
		calls = append(calls, call{debug: debug, format: format, args: args})
	})
	t.Cleanup(func() { SetOutputFunc(nil) })
	return &calls
}

func TestOutputStr_ForwardsWithFixedFormat(t *testing.T) {
	msgs := []string{"hello", "", "100%d", "%s%s%s", "%!x(MISSING)", "line1\nline2"}

	for _, debug := range []bool{true, false} {
		for _, msg := range msgs {
			calls := recordOutput(t)
			OutputStr(debug, msg)

			if len(*calls) != 1 {
				t.Fatalf("OutputStr(%v, %q): expected 1 call, got %d", debug, msg, len(*calls))
			}
			got := (*calls)[0]
			if got.debug != debug {
				t.Errorf("debug flag: expected %v, got %v", debug, got.debug)
			}
			if got.format != "%s" {
				t.Errorf("format: expected %%s, got %q", got.format)
			}
			if len(got.args) != 1 || got.args[0] != msg {
				t.Errorf("args: expected [%q], got %#v", msg, got.args)
			}
		}
	}
}

func TestOutputStr_Verbatim(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, WithDebugLevel(DebugBasic))

	msg := "rate 100%d %s %% %v\t%!\n"
	c.OutputStr(true, msg)
	c.OutputStr(false, msg)

	if got, want := buf.String(), msg+msg; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestOutputStr_Hello(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, WithDebugLevel(DebugBasic))
	SetOutputFunc(c.Output)
	defer SetOutputFunc(nil)

	OutputStr(true, "hello")
	if buf.String() != "hello" {
		t.Fatalf("expected hello, got %q", buf.String())
	}
}

func TestPackageHelpersRouteThroughOutputFunc(t *testing.T) {
	calls := recordOutput(t)

	Output(true, "n=%d", 7)
	Print("p%s", "!")
	DebugPrint("d")

	want := []call{
		{debug: true, format: "n=%d", args: []any{7}},
		{debug: false, format: "p%s", args: []any{"!"}},
		{debug: true, format: "d"},
	}
	if len(*calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(*calls))
	}
	for i, w := range want {
		got := (*calls)[i]
		if got.debug != w.debug || got.format != w.format || len(got.args) != len(w.args) {
			t.Fatalf("call %d: expected %+v, got %+v", i, w, got)
		}
		for j := range w.args {
			if got.args[j] != w.args[j] {
				t.Fatalf("call %d arg %d: expected %v, got %v", i, j, w.args[j], got.args[j])
			}
		}
	}
}

func TestPackageHelpersDefaultConsole(t *testing.T) {
	SetOutputFunc(nil)
	old := GetDebugLevel()
	defer SetDebugLevel(old)

	var buf bytes.Buffer
	std.mu.Lock()
	prevOut, prevColor := std.out, std.color
	std.out, std.color = &buf, false
	std.mu.Unlock()
	defer func() {
		std.mu.Lock()
		std.out, std.color = prevOut, prevColor
		std.mu.Unlock()
	}()

	SetDebugLevel(DebugOff)
	DebugPrint("hidden")
	Print("a%d", 1)
	SetDebugLevel(DebugBasic)
	OutputStr(true, "%d")
	if buf.String() != "a1%d" {
		t.Fatalf("expected default console output, got %q", buf.String())
	}
}

func TestOutput_DebugGating(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)

	c.Output(true, "a")
	c.Output(false, "b")
	if buf.String() != "b" {
		t.Fatalf("expected only normal output with DebugOff, got %q", buf.String())
	}

	c.SetDebugLevel(DebugBasic)
	c.Output(true, "c%d", 1)
	if buf.String() != "bc1" {
		t.Fatalf("expected debug output at DebugBasic, got %q", buf.String())
	}

	c.SetDebugLevel(DebugVerbose + 3)
	c.DebugPrint("d")
	c.Print("e")
	if buf.String() != "bc1de" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if got := c.DebugLevel(); got != DebugVerbose+3 {
		t.Fatalf("expected level %v, got %v", DebugVerbose+3, got)
	}
}

func TestOutput_PrefixAndLogFunc(t *testing.T) {
	var buf bytes.Buffer
	var logged []string
	var flags []bool

	c := New(&buf,
		WithDebugLevel(DebugBasic),
		WithDebugPrefix("[debug] "),
		WithDebugColor("99"),
		WithLogFunc(func(debug bool, msg string) {
			flags = append(flags, debug)
			logged = append(logged, msg)
		}),
	)

	c.OutputStr(true, "x\n")
	c.OutputStr(false, "y\n")

	if buf.String() != "[debug] x\ny\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if len(logged) != 2 || logged[0] != "[debug] x\n" || logged[1] != "y\n" {
		t.Fatalf("unexpected log hook messages: %#v", logged)
	}
	if !flags[0] || flags[1] {
		t.Fatalf("unexpected log hook flags: %#v", flags)
	}
}

func TestOutput_Suppressed(t *testing.T) {
	var buf bytes.Buffer
	var logged int
	c := New(&buf, WithLogFunc(func(bool, string) { logged++ }))

	c.SetSuppressed(true)
	c.Print("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output while suppressed, got %q", buf.String())
	}
	if logged != 1 {
		t.Fatalf("expected log hook to run while suppressed, got %d calls", logged)
	}

	c.SetSuppressed(false)
	c.SetLogFunc(nil)
	c.Print("shown")
	if buf.String() != "shown" {
		t.Fatalf("expected output after resume, got %q", buf.String())
	}
}

func TestDefaultConsoleLevel(t *testing.T) {
	old := GetDebugLevel()
	defer SetDebugLevel(old)

	if want := DebugLevel(buildtags.DefaultDebugLevel); old != want {
		t.Fatalf("expected default console at build default %v, got %v", want, old)
	}

	SetDebugLevel(DebugVerbose)
	if GetDebugLevel() != DebugVerbose {
		t.Fatalf("expected DebugVerbose, got %v", GetDebugLevel())
	}
	if Default().DebugLevel() != DebugVerbose {
		t.Fatalf("default console did not pick up level")
	}
}

func TestRenderDebugKeepsLineBreaks(t *testing.T) {
	c := New(&bytes.Buffer{})
	if got := c.renderDebug("\n\n"); got != "\n\n" {
		t.Fatalf("expected bare newlines untouched, got %q", got)
	}
}

func TestDebugLevelString(t *testing.T) {
	cases := map[DebugLevel]string{
		DebugOff:         "off",
		-1:               "off",
		DebugBasic:       "basic",
		DebugVerbose:     "verbose",
		DebugVerbose + 2: "verbose+2",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("DebugLevel(%d).String() = %q, want %q", int(level), got, want)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tty")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	fd, err := Open(filepath.Join(dir, "missing"), path)
	if err != nil {
		t.Fatalf("expected Open to fall through to %s: %v", path, err)
	}
	defer fd.Close()
	if fd.Name() != path {
		t.Fatalf("expected %s, got %s", path, fd.Name())
	}

	if _, err := Open(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error when no device opens")
	}
}

func TestIsTerminalRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if isTerminal(f) {
		t.Fatal("regular file reported as terminal")
	}
	if isTerminal(&bytes.Buffer{}) {
		t.Fatal("buffer reported as terminal")
	}
}

package style

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
)

// Console writes user-facing progress. Diagnostics go to the logger, not
// here. A Console is safe for concurrent use.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	plain bool
}

// NewConsole creates a console on out. FormatAuto detects terminal support.
func NewConsole(out io.Writer, format Format) *Console {
	if format == FormatAuto {
		format = DetectFormat(out)
	}
	return &Console{out: out, plain: format != FormatTerminal}
}

// Plain creates a console that never emits escape sequences.
func Plain(out io.Writer) *Console {
	return &Console{out: out, plain: true}
}

// Default returns a console on stdout.
func Default() *Console {
	return NewConsole(os.Stdout, FormatAuto)
}

// Discard returns a console that prints nothing.
func Discard() *Console {
	return Plain(io.Discard)
}

// OrDefault returns c, or a stdout console when c is nil.
func OrDefault(c *Console) *Console {
	if c == nil {
		return Default()
	}
	return c
}

// IsPlain reports whether styling is disabled.
func (c *Console) IsPlain() bool {
	return c.plain
}

func (c *Console) render(s string) string {
	if c.plain {
		return pterm.RemoveColorFromString(s)
	}
	return s
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, c.render(s))
}

// Println prints a message line as is.
func (c *Console) Println(msg string) {
	c.write(msg)
}

// Printf prints a formatted message line.
func (c *Console) Printf(format string, args ...interface{}) {
	c.write(fmt.Sprintf(format, args...))
}

// Step announces a pipeline phase.
func (c *Console) Step(msg string) {
	c.write(TitleStyle.Render(msg))
}

// Downloading announces a download.
func (c *Console) Downloading(name string) {
	c.write(fmt.Sprintf("Downloading %s..", name))
}

// BadFile reports a file that could not be cached.
func (c *Console) BadFile(name string) {
	c.write(name + " " + ErrorStyle.Render("Bad file!"))
}

// Success prints a success line.
func (c *Console) Success(msg string) {
	c.write(SuccessIndicator + " " + msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	c.write(WarningIndicator + " " + msg)
}

// Error prints an error line.
func (c *Console) Error(msg string) {
	c.write(ErrorIndicator + " " + ErrorStyle.Render(msg))
}

// Output prints text produced by an external tool, trimmed of trailing
// newlines.
func (c *Console) Output(text string) {
	text = strings.TrimRight(text, "\r\n")
	if text == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, text)
}

// Table prints rows under a header.
func (c *Console) Table(header []string, rows [][]string) {
	c.write(RenderTable(header, rows))
}

// Box prints lines framed under a title. Lines may carry markup.
func (c *Console) Box(title string, lines []string) {
	body := Render(strings.Join(lines, "\n"))
	if c.plain {
		c.write(title + "\n" + body)
		return
	}
	c.write(BoxStyle.Render(TitleStyle.Render(title) + "\n" + body))
}

// Markup prints a line with [tag]...[/tag] markup rendered.
func (c *Console) Markup(msg string) {
	c.write(Render(msg))
}

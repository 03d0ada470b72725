// Package console implements line-oriented interaction on a terminal (or any reader/writer pair).
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/download"
)

type styles struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	base := r.NewStyle()
	return styles{
		Title:   base.Foreground(lipgloss.Color("#7D56F4")),
		Prompt:  base.Foreground(lipgloss.Color("#22D3EE")),
		Success: base.Foreground(lipgloss.Color("#22C55E")),
		Error:   base.Foreground(lipgloss.Color("#EF4444")),
	}
}

type Console struct {
	in       *bufio.Reader
	out      io.Writer
	style    video_fetcher.ProgressStyle
	terminal bool
	styles   styles
}

// New creates a Console. Progress bars are redrawn in place only if out is a terminal.
func New(in io.Reader, out io.Writer, style video_fetcher.ProgressStyle) *Console {
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		style:    style,
		terminal: isTerminal(out),
		styles:   newStyles(lipgloss.NewRenderer(out)),
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Prompt writes text and reads one line of input, without surrounding whitespace. io.EOF is only returned once the
// input is exhausted; a final line without a newline is still returned.
func (c *Console) Prompt(text string) (string, error) {
	fmt.Fprint(c.out, c.styles.Prompt.Render(text))
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) Println(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Title(msg string) {
	fmt.Fprintln(c.out, c.styles.Title.Render(msg))
}

func (c *Console) Info(msg string) {
	c.Println(msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, c.styles.Error.Render(msg))
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, c.styles.Success.Render(msg))
}

// Progress returns a new sink in the configured style.
func (c *Console) Progress() download.ProgressSink {
	switch c.style {
	case video_fetcher.ProgressStyleBytes:
		return newBytesProgress(c.out)
	case video_fetcher.ProgressStyleBlock:
		return newLineProgress(c.out, video_fetcher.BlockBar, c.terminal)
	default:
		return newLineProgress(c.out, video_fetcher.ASCIIBar, c.terminal)
	}
}

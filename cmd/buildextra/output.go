package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// noColor disables ANSI colours. It starts true when NO_COLOR is set or
// stderr is not a terminal; --no-color forces it.
var noColor = os.Getenv("NO_COLOR") != "" ||
	!(isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

// console prints the status lines a person watches during a run. Results
// meant for scripts (config show, history) go to stdout instead.
type console struct {
	w io.Writer
}

// consoleFor writes to the command's error stream, which tests redirect.
func consoleFor(cmd *cobra.Command) console {
	return console{w: cmd.ErrOrStderr()}
}

func (c console) mark(color, glyph, format string, args ...any) {
	fmt.Fprintln(c.w, colorize(color, glyph+" "+fmt.Sprintf(format, args...)))
}

func (c console) success(format string, args ...any) { c.mark(colorGreen, "✓", format, args...) }

func (c console) failure(format string, args ...any) { c.mark(colorRed, "✗", format, args...) }

func (c console) warn(format string, args ...any) { c.mark(colorYellow, "⚠", format, args...) }

func (c console) step(format string, args ...any) { c.mark(colorCyan, "→", format, args...) }

// field prints an indented "Label: value" line of the backup summary.
func (c console) field(label string, value any) {
	fmt.Fprintf(c.w, "  %s %v\n", colorize(colorBold, label+":"), value)
}

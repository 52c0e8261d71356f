package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// maxWidth caps the width of the error box.
const maxWidth = 72

// shade is one color at the three depths a terminal may support.
type shade struct {
	truecolor, ansi256, ansi string
}

func (s shade) String() string {
	//nolint: exhaustive
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return s.truecolor
	case termenv.ANSI256:
		return s.ansi256
	}
	return s.ansi
}

var (
	errorForeground = shade{"#FF4444", "196", "9"}
	errorLight      = shade{"#FFEBEB", "255", "7"}
	errorDark       = shade{"#2B1A1A", "235", "8"}
)

func errorBox(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Margin(0, 0, 1, 2). //nolint:mnd
		Padding(1, 2).      //nolint:mnd
		Width(width).
		Foreground(lipgloss.Color(errorForeground.String())).
		Background(lipgloss.AdaptiveColor{Light: errorLight.String(), Dark: errorDark.String()})
}

// setupLogger sends human readable logs to w. Only warnings are shown
// unless verbose is set.
func setupLogger(w io.Writer, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isTerminal(f)
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func boxWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd())) //nolint: gosec
	if err != nil || w > maxWidth {
		return maxWidth
	}
	return w
}

// printError renders err in a box when f is a terminal and as a plain line
// otherwise.
func printError(f *os.File, err error) {
	if !isTerminal(f) {
		_, _ = fmt.Fprintf(f, "Error: %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(f, "\n%s\n\n", errorBox(boxWidth(f)).Render(err.Error()))
}

// promptSecret writes prompt to w and reads a line from the controlling
// terminal without echoing it.
func promptSecret(w io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(w, prompt)
	t, err := tty.Open()
	if err != nil {
		return "", fmt.Errorf("could not open tty: %w", err)
	}
	defer t.Close() //nolint: errcheck

	secret, err := term.ReadPassword(int(t.Input().Fd())) //nolint: gosec
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("could not read from terminal: %w", err)
	}
	defer clear(secret)
	return string(secret), nil
}

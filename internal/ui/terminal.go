// Package ui renders tasks and status lines and runs the interactive
// confirmation prompt and the read-only board.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/nibzard/task-cli/internal/task"
)

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a color mode name. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Width returns the column count of the terminal behind w, or
// task.DefaultWidth when w is not a terminal.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return task.DefaultWidth
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil || width <= 0 {
		return task.DefaultWidth
	}
	return width
}

// profile maps a color mode to the termenv profile used for w.
func profile(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorAlways:
		return termenv.ANSI256
	case ColorNever:
		return termenv.Ascii
	default:
		if !IsTTY(w) {
			return termenv.Ascii
		}
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

package ui

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.apply(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.apply(fmt.Sprintf(format, a...))
}

func (f Formatter) apply(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// Mask returns a fixed-width placeholder revealing at most the first
// character of a password, and only when it is long enough that the
// remainder stays hidden.
func Mask(password string) string {
	if utf8.RuneCountInString(password) < 8 {
		return strings.Repeat("*", 8)
	}
	first, _ := utf8.DecodeRuneInString(password)
	return string(first) + strings.Repeat("*", 7)
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	Path    = Formatter{color.New(color.FgYellow), "", ""}
	Flag    = Formatter{color.New(color.FgYellow), "", ""}
	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Tag formats tag names. 'single quotes' without color.
	Tag = Formatter{color.New(color.FgCyan, color.Bold), "'", "'"}

	// Muted formats secondary text. (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

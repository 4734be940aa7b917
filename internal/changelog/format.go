package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps category names to their terminal styling.
var categoryStyles = map[string]CategoryStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatBody writes a changelog body to w with terminal styling.
// Release headings are bold, Keep a Changelog category headings get their
// color and icon, and list entries are wrapped to the terminal width.
// Free-form notes are written through unchanged.
func FormatBody(body string, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := io.WriteString(w, body)
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	style := CategoryStyle{Color: color.New(color.Reset)}

	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		var err error
		switch {
		case strings.HasPrefix(line, "### "):
			name := strings.TrimSpace(strings.TrimPrefix(line, "### "))
			if s, ok := categoryStyles[strings.ToLower(name)]; ok {
				style = s
				colored := style.Color.SprintFunc()
				_, err = fmt.Fprintf(w, "%s %s\n", colored(style.Icon), colored(name))
			} else {
				_, err = fmt.Fprintln(w, line)
			}
		case strings.HasPrefix(line, "## "):
			style = CategoryStyle{Color: color.New(color.Reset)}
			bold := color.New(color.Bold).SprintFunc()
			_, err = fmt.Fprintf(w, "## %s\n", bold(strings.TrimPrefix(line, "## ")))
		case strings.HasPrefix(line, "- "):
			colored := style.Color.SprintFunc()
			text := wrapText(strings.TrimPrefix(line, "- "), width-2, "  ")
			_, err = fmt.Fprintf(w, "- %s\n", colored(text))
		default:
			_, err = fmt.Fprintln(w, line)
		}
		if err != nil {
			return err
		}
	}

	return sc.Err()
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth characters, using indent for
// continuation lines. Widths count runes so multi-byte characters are never split.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || utf8.RuneCountInString(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := []rune(text)

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, string(remaining[:breakPoint]))
		remaining = []rune(strings.TrimLeft(string(remaining[breakPoint:]), " "))
	}

	if len(remaining) > 0 {
		lines = append(lines, string(remaining))
	}

	return strings.Join(lines, "\n"+indent)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

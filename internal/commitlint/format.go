package commitlint

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// helpURL is printed after a failing report.
const helpURL = "https://www.conventionalcommits.org/en/v1.0.0/"

// FormatOptions controls report output.
type FormatOptions struct {
	// Plain disables colors.
	Plain bool
	// Verbose also prints reports for valid and ignored messages.
	Verbose bool
}

// FormatReport writes a human readable report for one message.
// Valid messages without warnings print nothing unless Verbose is set.
func FormatReport(r Report, w io.Writer, opts FormatOptions) error {
	if r.Ignored {
		if !opts.Verbose {
			return nil
		}
		_, err := fmt.Fprintf(w, "%s   input: %s\n%s   ignored (%s)\n\n",
			paint(opts, color.FgCyan, "⧗"), r.Input, paint(opts, color.FgCyan, "ⓘ"), r.IgnoreReason)
		return err
	}

	if len(r.Errors) == 0 && len(r.Warnings) == 0 && !opts.Verbose {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s   input: %s\n", paint(opts, color.FgCyan, "⧗"), r.Input); err != nil {
		return err
	}

	for _, p := range r.Errors {
		if _, err := fmt.Fprintf(w, "%s   %s [%s]\n", paint(opts, color.FgRed, "✖"), p.Message, p.Rule); err != nil {
			return err
		}
	}
	for _, p := range r.Warnings {
		if _, err := fmt.Fprintf(w, "%s   %s [%s]\n", paint(opts, color.FgYellow, "⚠"), p.Message, p.Rule); err != nil {
			return err
		}
	}

	mark := paint(opts, color.FgGreen, "✔")
	if len(r.Errors) > 0 {
		mark = paint(opts, color.FgRed, "✖")
	} else if len(r.Warnings) > 0 {
		mark = paint(opts, color.FgYellow, "⚠")
	}

	if _, err := fmt.Fprintf(w, "\n%s   found %d problems, %d warnings\n", mark, len(r.Errors), len(r.Warnings)); err != nil {
		return err
	}

	if len(r.Errors) > 0 {
		if _, err := fmt.Fprintf(w, "%s   Get help: %s\n", paint(opts, color.FgCyan, "ⓘ"), helpURL); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func paint(opts FormatOptions, attr color.Attribute, s string) string {
	if opts.Plain {
		return s
	}
	return color.New(attr).Sprint(s)
}

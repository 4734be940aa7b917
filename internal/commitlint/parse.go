package commitlint

import (
	"regexp"
	"strings"
)

var (
	headerPattern = regexp.MustCompile(`^(\w*)(?:\((.*)\))?(!?): (.*)$`)

	// breakingPattern starts a footer anywhere.
	breakingPattern = regexp.MustCompile(`^BREAKING[ -]CHANGE: `)

	// referencePattern and trailerPattern start a footer only at the
	// beginning of a paragraph.
	referencePattern = regexp.MustCompile(`(?i)^(close[sd]?|fix(es|ed)?|resolve[sd]?)\s+#\d+`)
	trailerPattern   = regexp.MustCompile(`^[A-Za-z][\w-]*(: | #)`)
)

// scissors is the line git puts above the diff in verbose commit templates.
const scissors = "# ------------------------ >8 ------------------------"

// Commit is a parsed commit message.
type Commit struct {
	Raw      string
	Header   string
	Type     string
	Scope    string
	Breaking bool
	Subject  string
	Body     string
	Footer   string

	// bodyLeadingBlank and footerLeadingBlank record whether a blank line
	// separates the section from the one before it.
	bodyLeadingBlank   bool
	footerLeadingBlank bool
}

// Parse splits a commit message into its conventional parts.
// A header that does not match "type(scope)!: subject" leaves Type and
// Subject empty rather than failing, so the rules can report it.
func Parse(message string) Commit {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	lines := strings.Split(message, "\n")

	c := Commit{Raw: message, Header: lines[0]}
	if m := headerPattern.FindStringSubmatch(c.Header); m != nil {
		c.Type = m[1]
		c.Scope = m[2]
		c.Breaking = m[3] == "!"
		c.Subject = m[4]
	}

	rest := lines[1:]
	footerStart := findFooter(rest)

	bodyLines := rest
	if footerStart >= 0 {
		bodyLines = rest[:footerStart]
		c.Footer = strings.TrimSpace(strings.Join(rest[footerStart:], "\n"))
		c.footerLeadingBlank = footerStart > 0 && strings.TrimSpace(rest[footerStart-1]) == ""
		if strings.HasPrefix(c.Footer, "BREAKING") {
			c.Breaking = true
		}
	}

	c.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	c.bodyLeadingBlank = len(rest) == 0 || strings.TrimSpace(rest[0]) == ""

	return c
}

// findFooter returns the index in lines where the footer begins, or -1.
func findFooter(lines []string) int {
	for i, line := range lines {
		if breakingPattern.MatchString(line) {
			return i
		}
		paragraphStart := i > 0 && strings.TrimSpace(lines[i-1]) == ""
		if paragraphStart && (referencePattern.MatchString(line) || trailerPattern.MatchString(line)) {
			return i
		}
	}
	return -1
}

// CleanMessage prepares the contents of a commit message file for linting.
// Everything below the scissors line is dropped, as are comment lines and
// trailing blank lines.
func CleanMessage(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	if i := strings.Index(raw, scissors); i >= 0 {
		raw = raw[:i]
	}

	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimRight(strings.Join(kept, "\n"), " \t\n")
}

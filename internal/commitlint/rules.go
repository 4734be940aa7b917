package commitlint

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Level is the severity of a rule violation.
type Level int

const (
	// LevelWarning problems are reported but do not fail the lint.
	LevelWarning Level = 1
	// LevelError problems fail the lint.
	LevelError Level = 2
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "off"
	}
}

// Problem is a single rule violation.
type Problem struct {
	Level   Level
	Rule    string
	Message string
}

// rule checks one property of a commit. It returns "" when the commit passes.
type rule struct {
	name  string
	level Level
	check func(c Commit, o Options) string
}

// forbiddenSubjectCases are the cases a subject may not be written in.
var forbiddenSubjectCases = []string{"sentence-case", "start-case", "pascal-case", "upper-case"}

// conventionalRules is the conventional commit preset.
var conventionalRules = []rule{
	{"body-leading-blank", LevelWarning, checkBodyLeadingBlank},
	{"body-max-line-length", LevelError, checkBodyMaxLineLength},
	{"footer-leading-blank", LevelWarning, checkFooterLeadingBlank},
	{"footer-max-line-length", LevelError, checkFooterMaxLineLength},
	{"header-max-length", LevelError, checkHeaderMaxLength},
	{"header-trim", LevelError, checkHeaderTrim},
	{"subject-case", LevelError, checkSubjectCase},
	{"subject-empty", LevelError, checkSubjectEmpty},
	{"subject-full-stop", LevelError, checkSubjectFullStop},
	{"type-case", LevelError, checkTypeCase},
	{"type-empty", LevelError, checkTypeEmpty},
	{"type-enum", LevelError, checkTypeEnum},
}

func checkBodyLeadingBlank(c Commit, _ Options) string {
	if c.Body == "" || c.bodyLeadingBlank {
		return ""
	}
	return "body must have leading blank line"
}

func checkBodyMaxLineLength(c Commit, o Options) string {
	if exceedsLineLength(c.Body, o.BodyMaxLineLength) {
		return fmt.Sprintf("body's lines must not be longer than %d characters", o.BodyMaxLineLength)
	}
	return ""
}

func checkFooterLeadingBlank(c Commit, _ Options) string {
	if c.Footer == "" || c.footerLeadingBlank {
		return ""
	}
	return "footer must have leading blank line"
}

func checkFooterMaxLineLength(c Commit, o Options) string {
	if exceedsLineLength(c.Footer, o.FooterMaxLineLength) {
		return fmt.Sprintf("footer's lines must not be longer than %d characters", o.FooterMaxLineLength)
	}
	return ""
}

func checkHeaderMaxLength(c Commit, o Options) string {
	n := utf8.RuneCountInString(c.Header)
	if o.HeaderMaxLength > 0 && n > o.HeaderMaxLength {
		return fmt.Sprintf("header must not be longer than %d characters, current length is %d", o.HeaderMaxLength, n)
	}
	return ""
}

func checkHeaderTrim(c Commit, _ Options) string {
	if c.Header != strings.TrimSpace(c.Header) {
		return "header must not be surrounded by whitespace"
	}
	return ""
}

func checkSubjectCase(c Commit, _ Options) string {
	if c.Subject == "" || !startsWithASCIILetter(c.Subject) {
		return ""
	}
	for _, target := range forbiddenSubjectCases {
		if ensureCase(c.Subject, target) {
			return "subject must not be " + strings.Join(forbiddenSubjectCases, ", ")
		}
	}
	return ""
}

func checkSubjectEmpty(c Commit, _ Options) string {
	if strings.TrimSpace(c.Subject) == "" {
		return "subject may not be empty"
	}
	return ""
}

func checkSubjectFullStop(c Commit, _ Options) string {
	s := strings.TrimRight(c.Subject, " ")
	if strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "...") {
		return "subject may not end with full stop"
	}
	return ""
}

func checkTypeCase(c Commit, _ Options) string {
	if c.Type == "" || ensureCase(c.Type, "lower-case") {
		return ""
	}
	return "type must be lower-case"
}

func checkTypeEmpty(c Commit, _ Options) string {
	if c.Type == "" {
		return "type may not be empty"
	}
	return ""
}

func checkTypeEnum(c Commit, o Options) string {
	if c.Type == "" || len(o.Types) == 0 {
		return ""
	}
	for _, t := range o.Types {
		if c.Type == t {
			return ""
		}
	}
	return "type must be one of [" + strings.Join(o.Types, ", ") + "]"
}

var urlLine = regexp.MustCompile(`^\s*(\S+:\s*)?https?://\S+\s*$`)

// exceedsLineLength reports whether any line of text is longer than max.
// Lines holding only a URL are allowed to run long.
func exceedsLineLength(text string, max int) bool {
	if text == "" || max <= 0 {
		return false
	}
	for _, line := range strings.Split(text, "\n") {
		if utf8.RuneCountInString(line) > max && !urlLine.MatchString(line) {
			return true
		}
	}
	return false
}

func startsWithASCIILetter(s string) bool {
	b := s[0]
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

var (
	quotedPattern = regexp.MustCompile("`.*?`|\".*?\"|'.*?'")
	wordPattern   = regexp.MustCompile(`[A-Z]+[a-z0-9]*|[a-z0-9]+`)
)

// ensureCase reports whether s is already written in the target case.
// Quoted segments are ignored since they often hold proper names.
func ensureCase(s, target string) bool {
	input := strings.TrimSpace(quotedPattern.ReplaceAllString(s, ""))
	transformed := toCase(input, target)
	if transformed == "" || (transformed[0] >= '0' && transformed[0] <= '9') {
		return true
	}
	return transformed == input
}

func toCase(s, target string) string {
	switch target {
	case "lower-case":
		return strings.ToLower(s)
	case "upper-case":
		return strings.ToUpper(s)
	case "sentence-case":
		return upperFirst(s)
	case "start-case":
		words := wordPattern.FindAllString(s, -1)
		for i, w := range words {
			words[i] = upperFirst(w)
		}
		return strings.Join(words, " ")
	case "pascal-case":
		words := wordPattern.FindAllString(s, -1)
		var b strings.Builder
		for _, w := range words {
			b.WriteString(upperFirst(strings.ToLower(w)))
		}
		return b.String()
	default:
		return s
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}

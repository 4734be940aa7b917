package commitlint

import (
	"fmt"
	"regexp"
	"strings"
)

// skipCIMarkers exempt a commit from linting when found anywhere in the
// message, compared case-insensitively.
var skipCIMarkers = []string{"[ci skip]", "[skip ci]"}

// defaultIgnores match messages written by git and hosting tools rather
// than by people.
var defaultIgnores = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^((Merge pull request)|(Merge (.*?) into (.*?)|(Merge branch (.*?)))(?:\r?\n)*$)`),
	regexp.MustCompile(`(?m)^(Merge tag (.*?))(?:\r?\n)*$`),
	regexp.MustCompile(`^(R|r)evert (.*)`),
	regexp.MustCompile(`^(amend|fixup|squash)!`),
	regexp.MustCompile(`^(Merged (.*?)(in|into) (.*)|Merged PR (.*): (.*))`),
	regexp.MustCompile(`^Merge remote-tracking branch(\s*)(.*)`),
	regexp.MustCompile(`^Automatic merge(.*)`),
	regexp.MustCompile(`^Auto-merged (.*?) into (.*)`),
}

// IsSkipCI reports whether message carries a skip-CI marker.
func IsSkipCI(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range skipCIMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ignoreMatcher decides whether a message is exempt from the rules.
type ignoreMatcher struct {
	useDefaults bool
	custom      []*regexp.Regexp
}

// newIgnoreMatcher compiles the extra ignore patterns.
func newIgnoreMatcher(useDefaults bool, patterns []string) (*ignoreMatcher, error) {
	m := &ignoreMatcher{useDefaults: useDefaults}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", p, err)
		}
		m.custom = append(m.custom, re)
	}
	return m, nil
}

// match returns a short reason when message is ignored, or "" otherwise.
func (m *ignoreMatcher) match(message string) string {
	if IsSkipCI(message) {
		return "skip ci"
	}
	if m.useDefaults {
		for _, re := range defaultIgnores {
			if re.MatchString(message) {
				return "generated by git"
			}
		}
	}
	for _, re := range m.custom {
		if re.MatchString(message) {
			return "matches " + re.String()
		}
	}
	return ""
}

package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// defaultActivity names a request whose title cleaned down to nothing.
const defaultActivity = "Meeting"

// cleanupStep rewrites every match of pattern with replacement.
type cleanupStep struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
}

// cleanupSteps returns the title cleanup pipeline in execution order:
// relative day keywords, then each locale's filler categories, then
// punctuation and whitespace.
func cleanupSteps() []cleanupStep {
	var relative []string
	for _, tag := range locales {
		relative = append(relative, relativeKeywords[tag].tomorrow...)
		relative = append(relative, relativeKeywords[tag].today...)
	}
	steps := []cleanupStep{{
		name:    "relative",
		pattern: regexp.MustCompile(`(?i)` + strings.Join(relative, "|")),
	}}

	for _, tag := range locales {
		lex := cleanupLexicons[tag]
		steps = append(steps,
			cleanupStep{name: tag + ".verbs", pattern: fragmentsPattern(lex.verbs)},
			cleanupStep{name: tag + ".greetings", pattern: fragmentsPattern(lex.greetings)},
			cleanupStep{name: tag + ".politeness", pattern: fragmentsPattern(lex.politeness)},
			cleanupStep{name: tag + ".address", pattern: fragmentsPattern(lex.address)},
			cleanupStep{name: tag + ".generic", pattern: fragmentsPattern(lex.generic)},
			cleanupStep{name: tag + ".function", pattern: fragmentsPattern(lex.function), replacement: " "},
		)
	}

	return append(steps,
		cleanupStep{name: "punctuation", pattern: regexp.MustCompile(`[;,.?!]`)},
		cleanupStep{name: "whitespace", pattern: regexp.MustCompile(`\s+`), replacement: " "},
	)
}

// extractActivity removes the consumed time, date and recurrence literals from
// the original text, then runs the cleanup pipeline.
func extractActivity(steps []cleanupStep, original string, consumed ...string) string {
	s := original
	for _, literal := range consumed {
		s = removeFirst(s, literal)
	}
	for _, step := range steps {
		s = step.pattern.ReplaceAllLiteralString(s, step.replacement)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultActivity
	}
	return capitalize(s)
}

// removeFirst deletes the first case-insensitive occurrence of literal.
// Literals come from the lower-cased text, the original keeps its casing.
func removeFirst(s, literal string) string {
	if literal == "" {
		return s
	}
	loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(literal)).FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

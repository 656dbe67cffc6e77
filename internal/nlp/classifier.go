package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// classifier recognizes admin commands and small talk before any scheduling
// extraction runs.
type classifier struct {
	nicknameTriggers []string
	greetings        *regexp.Regexp
	help             *regexp.Regexp
	status           *regexp.Regexp
	gratitude        *regexp.Regexp
}

func newClassifier() *classifier {
	var triggers, greetings, help, status, gratitude []string
	for _, tag := range locales {
		lex := conversationLexicons[tag]
		triggers = append(triggers, lex.nicknameTriggers...)
		greetings = append(greetings, lex.greetings...)
		help = append(help, lex.help...)
		status = append(status, lex.status...)
		gratitude = append(gratitude, lex.gratitude...)
	}
	return &classifier{
		nicknameTriggers: triggers,
		greetings:        wordsPattern(greetings),
		help:             wordsPattern(help),
		status:           wordsPattern(status),
		gratitude:        wordsPattern(gratitude),
	}
}

// classify returns the command or conversation intent for text, or false when
// the message should go on to scheduling extraction.
func (c *classifier) classify(lower, original string) (ParsedIntent, bool) {
	for _, a := range adminPhrases {
		if strings.Contains(lower, a.phrase) {
			return ParsedIntent{Kind: KindCommand, Command: a.command, Original: original}, true
		}
	}

	if name, ok := c.nickname(lower, original); ok {
		return ParsedIntent{
			Kind:         KindConversation,
			Conversation: ConversationSetNickname,
			Nickname:     name,
			Original:     original,
		}, true
	}

	folded := foldAccents(lower)
	conv := ConversationNone
	switch {
	case c.greetings.MatchString(folded) && !containsDigit(lower) && !containsAny(lower, greetingGuards):
		conv = ConversationGreeting
	case c.help.MatchString(folded):
		conv = ConversationHelp
	case c.status.MatchString(folded):
		conv = ConversationStatus
	case c.gratitude.MatchString(folded):
		conv = ConversationGratitude
	}
	if conv == ConversationNone {
		return ParsedIntent{}, false
	}
	return ParsedIntent{Kind: KindConversation, Conversation: conv, Original: original}, true
}

// nickname extracts the name after a trigger phrase, keeping the user's casing.
func (c *classifier) nickname(lower, original string) (string, bool) {
	trimmedLower := strings.TrimLeftFunc(lower, unicode.IsSpace)
	trimmed := strings.TrimLeftFunc(original, unicode.IsSpace)
	for _, trigger := range c.nicknameTriggers {
		if !strings.HasPrefix(trimmedLower, trigger) {
			continue
		}
		rest := trimmedLower[len(trigger):]
		if len(trimmed) == len(trimmedLower) {
			rest = trimmed[len(trigger):]
		}
		name := strings.TrimSpace(rest)
		name = strings.TrimRight(name, ".,!")
		name = strings.TrimSpace(name)
		if name == "" {
			return "", false
		}
		return name, true
	}
	return "", false
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

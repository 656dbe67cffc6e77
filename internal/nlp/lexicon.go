package nlp

import (
	"regexp"
	"strings"
	"time"
)

// locales lists lexicon tags in the order their cleanup steps run.
var locales = []string{"en", "es"}

// conversationLexicon holds the small-talk vocabulary of one locale. Entries
// are literal phrases matched on word boundaries.
type conversationLexicon struct {
	nicknameTriggers []string
	greetings        []string
	help             []string
	status           []string
	gratitude        []string
}

var conversationLexicons = map[string]conversationLexicon{
	"en": {
		nicknameTriggers: []string{"call me", "my name is"},
		greetings:        []string{"hi", "hello", "hey", "yo", "sup", "greetings"},
		help:             []string{"help", "what can you do", "guide"},
		status:           []string{"how are you", "what's up"},
		gratitude:        []string{"thanks", "thank you", "thx"},
	},
	"es": {
		nicknameTriggers: []string{"llámame", "llamame", "mi nombre es"},
		greetings:        []string{"hola", "buenas"},
		help:             []string{"ayuda", "que puedes hacer"},
		status:           []string{"como estas", "que tal"},
		gratitude:        []string{"gracias"},
	},
}

// adminPhrases trigger admin commands when they appear anywhere in the text.
var adminPhrases = []struct {
	phrase  string
	command Command
}{
	{"ram sudo mode", CommandActivateAdmin},
	{"ram exit sudo", CommandDeactivateAdmin},
	{"ram nuke database", CommandNukeDatabase},
}

// greetingGuards veto a greeting when present; "hi, meeting at 5" is a request.
var greetingGuards = []string{"meet", "gym"}

var relativeKeywords = map[string]struct{ tomorrow, today []string }{
	"en": {tomorrow: []string{"tomorrow"}, today: []string{"today"}},
	"es": {tomorrow: []string{"mañana"}, today: []string{"hoy"}},
}

// weekdays resolves the first three letters of a weekday name.
var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	"dom": time.Sunday, "lun": time.Monday, "mar": time.Tuesday, "mie": time.Wednesday,
	"jue": time.Thursday, "vie": time.Friday, "sab": time.Saturday,
}

// months resolves the first three letters of a month name. Spanish names that
// share the English prefix (feb, mar, may, jun, jul, sep, oct, nov) need no entry.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
	"ene": time.January, "abr": time.April, "ago": time.August, "dic": time.December,
}

// cleanupLexicon groups the filler vocabulary stripped from activity titles.
// Entries are regular expression fragments ("ey+" matches "eyyy").
type cleanupLexicon struct {
	verbs      []string
	greetings  []string
	politeness []string
	address    []string
	generic    []string
	function   []string
}

var cleanupLexicons = map[string]cleanupLexicon{
	"en": {
		verbs:      []string{"schedule", "add", "create", "remind", "put", "book", "set", "make"},
		greetings:  []string{"ey+", "hey+", "hello", "hi", "yo", "how are you", "how is it going", "how you doing", "hope you are good"},
		politeness: []string{"can you", "could you", "would you", "please", "plz", "thanks", "thank you", "kindly"},
		address:    []string{"man", "bro", "dude", "mate", "buddy", "pal", "miss", "sir", "madam", "boss"},
		generic:    []string{"do", "doing", "have", "get", "take", "perform", "arrange"},
		function:   []string{"at", "in", "on", "of", "from", "starting", "for", "the", "a", "an"},
	},
	"es": {
		verbs:      []string{"agendar", "agenda", "crear", "recordar", "pon", "poner", "hacer", "reservar"},
		greetings:  []string{"hola", "ey", "buenas", "que tal", "como estas"},
		politeness: []string{"por favor", "gracias", "puedes", "podrias"},
		address:    []string{"tio", "amigo", "jefe", "colega", "hombre", "mujer"},
		generic:    []string{"tengo", "hay", "hacer", "tener", "ir"},
		function:   []string{"en", "el", "la", "los", "las", "de", "del", "para", "por", "un", "una"},
	},
}

var accentFolder = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u")

// foldAccents strips Spanish diacritics so "cómo estás" matches "como estas".
func foldAccents(s string) string {
	return accentFolder.Replace(s)
}

// wordsPattern compiles literal phrases into one case-insensitive alternation
// anchored on word boundaries.
func wordsPattern(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// fragmentsPattern is wordsPattern for entries that are already regex fragments.
func fragmentsPattern(fragments []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(` + strings.Join(fragments, "|") + `)\b`)
}

func resolveWeekday(word string) (time.Weekday, bool) {
	word = foldAccents(word)
	if len(word) < 3 {
		return 0, false
	}
	d, ok := weekdays[word[:3]]
	return d, ok
}

func resolveMonth(word string) (time.Month, bool) {
	if len(word) < 3 {
		return 0, false
	}
	m, ok := months[word[:3]]
	return m, ok
}

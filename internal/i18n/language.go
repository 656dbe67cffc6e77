package i18n

import (
	"strings"
	"time"
)

// Language is a BCP 47 tag for one of the supported chat languages.
type Language string

const (
	English Language = "en-US"
	Spanish Language = "es-ES"
)

// Parse maps loose user input ("es", "ES-es", "spanish", "español") to a Language.
func Parse(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "en-us", "en-gb", "english", "ingles", "inglés":
		return English, true
	case "es", "es-es", "es-mx", "spanish", "espanol", "español":
		return Spanish, true
	default:
		return "", false
	}
}

// Tag returns the two-letter locale tag used to key lexicon tables.
func (l Language) Tag() string {
	if l.IsSpanish() {
		return "es"
	}
	return "en"
}

func (l Language) IsSpanish() bool {
	return strings.HasPrefix(strings.ToLower(string(l)), "es")
}

func (l Language) String() string {
	if l == "" {
		return string(English)
	}
	return string(l)
}

var shortDays = map[string][7]string{
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	"es": {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
}

var shortMonths = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"es": {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
}

var fullMonths = map[string][12]string{
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"es": {"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
}

func (l Language) ShortDay(d time.Weekday) string {
	return shortDays[l.Tag()][d]
}

func (l Language) ShortMonth(m time.Month) string {
	return shortMonths[l.Tag()][m-1]
}

func (l Language) Month(m time.Month) string {
	return fullMonths[l.Tag()][m-1]
}

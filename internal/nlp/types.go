package nlp

import (
	"time"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
	"github.com/zhafrantharif/ram-assistant/internal/i18n"
)

// Kind tells which of the three intent families a message belongs to.
type Kind int

const (
	KindScheduling Kind = iota
	KindCommand
	KindConversation
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindConversation:
		return "conversation"
	default:
		return "scheduling"
	}
}

type Command int

const (
	CommandNone Command = iota
	CommandActivateAdmin
	CommandDeactivateAdmin
	CommandNukeDatabase
)

func (c Command) String() string {
	switch c {
	case CommandActivateAdmin:
		return "activate_admin"
	case CommandDeactivateAdmin:
		return "deactivate_admin"
	case CommandNukeDatabase:
		return "nuke_database"
	default:
		return "none"
	}
}

type Conversation int

const (
	ConversationNone Conversation = iota
	ConversationSetNickname
	ConversationGreeting
	ConversationHelp
	ConversationStatus
	ConversationGratitude
)

func (c Conversation) String() string {
	switch c {
	case ConversationSetNickname:
		return "set_nickname"
	case ConversationGreeting:
		return "greeting"
	case ConversationHelp:
		return "help"
	case ConversationStatus:
		return "status"
	case ConversationGratitude:
		return "gratitude"
	default:
		return "none"
	}
}

// ParsedIntent is the result of parsing one chat message. Exactly one of
// Command, Conversation or Schedule is meaningful, selected by Kind.
type ParsedIntent struct {
	Kind         Kind
	Command      Command
	Conversation Conversation
	Nickname     string
	Schedule     *Schedule
	Original     string
}

// Schedule is a scheduling request extracted from free text.
type Schedule struct {
	Activity    string
	TimeLabel   string
	Instant     time.Time
	IsRecurring bool
	Weekdays    []time.Weekday
	IsValid     bool

	TimeMatched bool
	DateMatched bool
}

// HasTime reports whether the schedule carries a time of day.
func (s *Schedule) HasTime() bool {
	return s.TimeLabel != "" && s.TimeLabel != calendar.AllDay
}

// Request is the input of one parse. Now is the reference instant for every
// relative expression; its location is the user's time zone.
type Request struct {
	Text     string
	Override *Override
	Now      time.Time
	Language i18n.Language
}

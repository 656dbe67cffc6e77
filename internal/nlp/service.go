package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/zhafrantharif/ram-assistant/internal/calendar"
)

// Completer sends one system+user prompt to a language model and returns the
// text of its reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type AnthropicCompleter struct {
	client anthropic.Client
	model  string
}

func NewAnthropicCompleter(apiKey string) *AnthropicCompleter {
	return &AnthropicCompleter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  "claude-haiku-4-5-20251001",
	}
}

func (c *AnthropicCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 256,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					{OfRequestTextBlock: &anthropic.TextBlockParam{Text: user}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from api")
}

// Service parses messages with the rule-based Parser and, when configured,
// asks a language model about scheduling requests the rules could not place
// in time.
type Service struct {
	parser   *Parser
	fallback Completer
	timezone *time.Location
}

// NewService builds a Service. fallback may be nil.
func NewService(parser *Parser, fallback Completer, timezone *time.Location) *Service {
	return &Service{
		parser:   parser,
		fallback: fallback,
		timezone: timezone,
	}
}

func (s *Service) Parse(ctx context.Context, req Request) ParsedIntent {
	if req.Now.IsZero() {
		req.Now = time.Now().In(s.timezone)
	}

	intent := s.parser.Parse(req)
	if s.fallback == nil || req.Override != nil || intent.Kind != KindScheduling || intent.Schedule.IsValid {
		return intent
	}

	sched, err := s.ask(ctx, req)
	if err != nil {
		// Retry once
		slog.Warn("NLP fallback first attempt failed, retrying", "error", err)
		sched, err = s.ask(ctx, req)
		if err != nil {
			slog.Error("NLP fallback failed", "error", err)
			return intent
		}
	}
	if sched == nil {
		return intent
	}
	intent.Schedule = sched
	return intent
}

// fallbackReply is the JSON shape the model is asked to produce.
type fallbackReply struct {
	Activity string `json:"activity"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Weekdays []int  `json:"weekdays"`
}

func (s *Service) ask(ctx context.Context, req Request) (*Schedule, error) {
	now := req.Now.In(s.timezone)
	systemPrompt := fmt.Sprintf(`You extract calendar events from chat messages written in English or Spanish.

Today: %s
Timezone: %s

RULES:
- Output ONLY one JSON object, no markdown, no explanation
- Shape: {"activity": string, "date": "YYYY-MM-DD" or "", "time": "HH:MM" (24h) or "", "weekdays": [0-6] (0 = Sunday) or []}
- "activity" is a short title without dates, times or filler words ("Dentist", "Gym with Ana")
- If the message is not a request to schedule something, return {"activity": "", "date": "", "time": "", "weekdays": []}`,
		now.Format("2006-01-02 (Monday)"),
		s.timezone.String(),
	)

	text, err := s.fallback.Complete(ctx, systemPrompt, req.Text)
	if err != nil {
		return nil, err
	}

	// Clean potential markdown wrapping
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var reply fallbackReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, fmt.Errorf("parse json response: %w (raw: %s)", err, text)
	}
	return reply.schedule(now), nil
}

// schedule converts the model's answer, returning nil when it holds nothing
// the bot can book.
func (r fallbackReply) schedule(now time.Time) *Schedule {
	loc := now.Location()
	sched := &Schedule{
		TimeLabel: calendar.AllDay,
		Instant:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc),
	}

	if d, err := time.ParseInLocation("2006-01-02", r.Date, loc); err == nil {
		sched.Instant = d
		sched.DateMatched = true
	}
	if clock, err := time.Parse("15:04", r.Time); err == nil {
		d := sched.Instant
		sched.Instant = time.Date(d.Year(), d.Month(), d.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
		sched.TimeLabel = clock.Format("15:04")
		sched.TimeMatched = true
	}
	for _, wd := range r.Weekdays {
		if wd >= 0 && wd <= 6 {
			sched.Weekdays = append(sched.Weekdays, time.Weekday(wd))
		}
	}
	sched.IsRecurring = len(sched.Weekdays) > 0
	sched.IsValid = sched.TimeMatched || sched.DateMatched || sched.IsRecurring

	activity := strings.TrimSpace(r.Activity)
	if !sched.IsValid || activity == "" {
		return nil
	}
	sched.Activity = capitalize(activity)
	return sched
}

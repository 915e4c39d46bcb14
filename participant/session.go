// Package participant implements the step-by-step runtime a participant
// walks through: answer the fields in order, submit, and reveal the
// generated story card.
package participant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/story"
)

type State string

const (
	StateAnswering  State = "answering"
	StateGenerating State = "generating"
	StateRevealed   State = "revealed"
)

var (
	ErrAnswerRequired = errors.New("answer required")
	ErrNotAnswering   = errors.New("session is not accepting answers")
	ErrNotRevealed    = errors.New("story is not revealed yet")
	ErrNoFields       = errors.New("form has no fields")
)

// Submitter is the persistence hop a completing session performs.
type Submitter interface {
	CreateSubmission(ctx context.Context, formID string, data map[string]any) (string, error)
}

// SubmitTimeout bounds the submission call when the caller's context
// carries no deadline of its own.
const SubmitTimeout = 10 * time.Second

// Session walks one participant through a form. It is not safe for
// concurrent use; a session belongs to a single participant interaction.
type Session struct {
	form      *document.Form
	submitter Submitter

	state        State
	step         int
	answers      map[string]any
	submissionID string
}

func NewSession(form *document.Form, submitter Submitter) *Session {
	return &Session{
		form:      form,
		submitter: submitter,
		state:     StateAnswering,
		answers:   make(map[string]any),
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Step() int    { return s.step }

// SubmissionID returns the id assigned by the submitter, once revealed.
func (s *Session) SubmissionID() string { return s.submissionID }

// Answers returns a copy of the accumulated answer map.
func (s *Session) Answers() map[string]any {
	out := make(map[string]any, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// CurrentField returns the field the session is waiting on, or nil once
// past answering.
func (s *Session) CurrentField() *document.FormField {
	if s.state != StateAnswering || s.step >= len(s.form.Fields) {
		return nil
	}
	return &s.form.Fields[s.step]
}

// Answer records a value for the current field. Re-answering replaces
// the previous value; selecting an option for a select field is
// click-to-choose, not toggle.
func (s *Session) Answer(value any) error {
	field := s.CurrentField()
	if field == nil {
		return ErrNotAnswering
	}
	s.answers[field.ID] = value
	return nil
}

func (s *Session) answered(field document.FormField) bool {
	value, ok := s.answers[field.ID]
	if !ok || value == nil {
		return false
	}
	return fmt.Sprint(value) != ""
}

// Next advances the session. While the current field is required and
// unanswered, Next is a guarded no-op returning ErrAnswerRequired. From
// the last field it enters generating and performs the submission; on
// success the session is revealed, on failure it returns to answering
// with the answers intact so the participant can retry.
func (s *Session) Next(ctx context.Context) error {
	if s.state != StateAnswering {
		return ErrNotAnswering
	}
	if len(s.form.Fields) == 0 {
		return ErrNoFields
	}

	field := s.form.Fields[s.step]
	if field.Required && !s.answered(field) {
		return ErrAnswerRequired
	}

	if s.step < len(s.form.Fields)-1 {
		s.step++
		return nil
	}

	s.state = StateGenerating
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, SubmitTimeout)
		defer cancel()
	}
	id, err := s.submitter.CreateSubmission(ctx, s.form.ID, s.Answers())
	if err != nil {
		s.state = StateAnswering
		return err
	}
	s.submissionID = id
	s.state = StateRevealed
	return nil
}

// Reveal hands off to the story renderer with the accumulated answers.
// Canvas text elements carry {Label} placeholders; those are bound to
// the participant's answers here, before the renderer runs, so the
// revealed card is personalized. Only valid once the session is
// revealed.
func (s *Session) Reveal() (story.Card, error) {
	if s.state != StateRevealed {
		return story.Card{}, ErrNotRevealed
	}
	cfg := s.form.Story
	if cfg.Canvas != nil {
		cfg = bindAnswers(cfg, s.answers, s.form.Fields)
	}
	return story.Render(cfg, s.answers, s.form.Fields), nil
}

// bindAnswers substitutes {Label} placeholders in canvas text content
// with the answer of the field carrying that label. Placeholders with
// no matching field or an empty answer stay verbatim.
func bindAnswers(cfg document.StoryConfig, answers map[string]any, fields []document.FormField) document.StoryConfig {
	bound := &document.CanvasStory{
		BackgroundColor: cfg.Canvas.BackgroundColor,
		Elements:        append([]document.StoryElement(nil), cfg.Canvas.Elements...),
	}
	for i := range bound.Elements {
		el := &bound.Elements[i]
		if el.Type != document.ElementText || !strings.Contains(el.Content, "{") {
			continue
		}
		for _, field := range fields {
			placeholder := "{" + field.Label + "}"
			if !strings.Contains(el.Content, placeholder) {
				continue
			}
			if value, ok := answers[field.ID]; ok && fmt.Sprint(value) != "" {
				el.Content = strings.ReplaceAll(el.Content, placeholder, fmt.Sprint(value))
			}
		}
	}
	return document.StoryConfig{Canvas: bound}
}

// Run drives a whole session from a pre-collected answer map, stepping
// each field in order. It enforces the same required-field guard the
// interactive flow does and reports the offending field on failure.
func (s *Session) Run(ctx context.Context, answers map[string]any) error {
	if len(s.form.Fields) == 0 {
		return ErrNoFields
	}
	for s.state == StateAnswering {
		field := s.CurrentField()
		if value, ok := answers[field.ID]; ok {
			if err := s.Answer(value); err != nil {
				return err
			}
		}
		if err := s.Next(ctx); err != nil {
			if errors.Is(err, ErrAnswerRequired) {
				return fmt.Errorf("%w: %s", ErrAnswerRequired, field.Label)
			}
			return err
		}
	}
	return nil
}

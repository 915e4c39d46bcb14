package participant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrappedform/wrappedform/document"
)

type fakeSubmitter struct {
	id       string
	err      error
	calls    int
	lastData map[string]any
}

func (f *fakeSubmitter) CreateSubmission(ctx context.Context, formID string, data map[string]any) (string, error) {
	f.calls++
	f.lastData = data
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func testForm() *document.Form {
	return &document.Form{
		ID:     "form-1",
		Status: document.StatusActive,
		Fields: []document.FormField{
			{ID: "name", Type: document.FieldText, Label: "Full Name", Required: true, ShowInStory: true},
			{ID: "role", Type: document.FieldSelect, Label: "Role", Required: false, ShowInStory: true, Options: []string{"Dev", "Designer"}},
			{ID: "email", Type: document.FieldEmail, Label: "Email", Required: true},
		},
		Story: document.DefaultStoryConfig(),
	}
}

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("StartsAnsweringAtFirstField", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})
		assert.Equal(t, StateAnswering, s.State())
		assert.Equal(t, 0, s.Step())
		assert.Equal(t, "name", s.CurrentField().ID)
	})

	t.Run("RequiredGuardBlocksNext", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})

		err := s.Next(ctx)

		assert.ErrorIs(t, err, ErrAnswerRequired)
		assert.Equal(t, 0, s.Step())
		assert.Equal(t, StateAnswering, s.State())
	})

	t.Run("EmptyAnswerStillBlocks", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Answer(""))

		assert.ErrorIs(t, s.Next(ctx), ErrAnswerRequired)
	})

	t.Run("OptionalFieldMaySkip", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Answer("Jo"))
		require.NoError(t, s.Next(ctx))

		// role is optional.
		require.NoError(t, s.Next(ctx))
		assert.Equal(t, 2, s.Step())
	})

	t.Run("ReAnswerReplaces", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Answer("Dev"))
		require.NoError(t, s.Answer("Designer"))

		assert.Equal(t, "Designer", s.Answers()["name"])
	})

	t.Run("LastNextSubmitsAndReveals", func(t *testing.T) {
		submitter := &fakeSubmitter{id: "sub-1"}
		s := NewSession(testForm(), submitter)

		require.NoError(t, s.Answer("Jo"))
		require.NoError(t, s.Next(ctx))
		require.NoError(t, s.Answer("Dev"))
		require.NoError(t, s.Next(ctx))
		require.NoError(t, s.Answer("jo@example.com"))
		require.NoError(t, s.Next(ctx))

		assert.Equal(t, StateRevealed, s.State())
		assert.Equal(t, "sub-1", s.SubmissionID())
		assert.Equal(t, 1, submitter.calls)
		assert.Equal(t, map[string]any{"name": "Jo", "role": "Dev", "email": "jo@example.com"}, submitter.lastData)
	})

	t.Run("SubmitFailureReturnsToAnswering", func(t *testing.T) {
		submitter := &fakeSubmitter{err: errors.New("store down")}
		s := NewSession(testForm(), submitter)

		require.NoError(t, s.Answer("Jo"))
		require.NoError(t, s.Next(ctx))
		require.NoError(t, s.Next(ctx))
		require.NoError(t, s.Answer("jo@example.com"))

		err := s.Next(ctx)
		require.Error(t, err)
		assert.Equal(t, StateAnswering, s.State())
		assert.Empty(t, s.SubmissionID())
		// Answers survive for a retry.
		assert.Equal(t, "Jo", s.Answers()["name"])

		submitter.err = nil
		submitter.id = "sub-2"
		require.NoError(t, s.Next(ctx))
		assert.Equal(t, StateRevealed, s.State())
		assert.Equal(t, "sub-2", s.SubmissionID())
	})

	t.Run("AnswerAfterRevealRejected", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Run(ctx, map[string]any{"name": "Jo", "email": "jo@example.com"}))

		assert.ErrorIs(t, s.Answer("late"), ErrNotAnswering)
		assert.ErrorIs(t, s.Next(ctx), ErrNotAnswering)
	})

	t.Run("EmptyFormCannotAdvance", func(t *testing.T) {
		s := NewSession(&document.Form{ID: "empty"}, &fakeSubmitter{})
		assert.ErrorIs(t, s.Next(ctx), ErrNoFields)
	})
}

func TestSessionRun(t *testing.T) {
	ctx := context.Background()

	t.Run("RunCompletesWithFullAnswers", func(t *testing.T) {
		submitter := &fakeSubmitter{id: "sub-9"}
		s := NewSession(testForm(), submitter)

		err := s.Run(ctx, map[string]any{"name": "Jo", "role": "Dev", "email": "jo@example.com"})

		require.NoError(t, err)
		assert.Equal(t, StateRevealed, s.State())
		assert.Equal(t, "sub-9", s.SubmissionID())
	})

	t.Run("RunReportsMissingRequiredField", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-9"})

		err := s.Run(ctx, map[string]any{"name": "Jo"})

		require.ErrorIs(t, err, ErrAnswerRequired)
		assert.Contains(t, err.Error(), "Email")
		assert.Equal(t, StateAnswering, s.State())
	})

	t.Run("RunSkipsOptionalFields", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-9"})
		err := s.Run(ctx, map[string]any{"name": "Jo", "email": "jo@example.com"})
		require.NoError(t, err)
	})
}

func TestSessionReveal(t *testing.T) {
	ctx := context.Background()

	t.Run("RevealBeforeSubmitRejected", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})
		_, err := s.Reveal()
		assert.ErrorIs(t, err, ErrNotRevealed)
	})

	t.Run("RevealRendersStoryCard", func(t *testing.T) {
		s := NewSession(testForm(), &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Run(ctx, map[string]any{"name": "Jo", "email": "jo@example.com"}))

		card, err := s.Reveal()
		require.NoError(t, err)
		assert.Equal(t, "canvas", card.Variant)
		assert.NotEmpty(t, card.Nodes)
	})

	t.Run("RevealBindsAnswersIntoCanvasCard", func(t *testing.T) {
		form := document.NewForm()
		nameID := form.Fields[0].ID // Full Name
		emailID := form.Fields[1].ID

		s := NewSession(form, &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Run(ctx, map[string]any{nameID: "Jo", emailID: "jo@example.com"}))

		card, err := s.Reveal()
		require.NoError(t, err)

		texts := make([]string, 0, len(card.Nodes))
		for _, n := range card.Nodes {
			texts = append(texts, n.Text)
		}
		assert.Contains(t, texts, "Jo")
		assert.NotContains(t, texts, "{Full Name}")
	})

	t.Run("RevealLeavesUnresolvedPlaceholders", func(t *testing.T) {
		form := document.NewForm()
		emailID := form.Fields[1].ID
		form.Fields[0].Required = false // leave the name unanswered

		s := NewSession(form, &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Run(ctx, map[string]any{emailID: "jo@example.com"}))

		card, err := s.Reveal()
		require.NoError(t, err)

		texts := make([]string, 0, len(card.Nodes))
		for _, n := range card.Nodes {
			texts = append(texts, n.Text)
		}
		assert.Contains(t, texts, "{Full Name}")
	})

	t.Run("RevealDoesNotMutateStoredDesign", func(t *testing.T) {
		form := document.NewForm()
		nameID := form.Fields[0].ID
		emailID := form.Fields[1].ID

		s := NewSession(form, &fakeSubmitter{id: "sub-1"})
		require.NoError(t, s.Run(ctx, map[string]any{nameID: "Jo", emailID: "jo@example.com"}))
		_, err := s.Reveal()
		require.NoError(t, err)

		name := form.FindField(nameID)
		require.NotNil(t, name)
		for _, el := range form.Story.Canvas.Elements {
			if el.ID == "participant-name" {
				assert.Equal(t, "{Full Name}", el.Content)
			}
		}
	})
}

package story

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrappedform/wrappedform/document"
)

func nameField() document.FormField {
	return document.FormField{ID: "full_name", Type: document.FieldText, Label: "Full Name", ShowInStory: true}
}

func TestRenderCanvas(t *testing.T) {
	cfg := document.DefaultStoryConfig()

	t.Run("PaintOrderFollowsArrayOrder", func(t *testing.T) {
		card := Render(cfg, nil, nil)

		assert.Equal(t, "canvas", card.Variant)
		assert.Equal(t, "#6366F1", card.Background)
		require.Len(t, card.Nodes, len(cfg.Canvas.Elements))
		for i, el := range cfg.Canvas.Elements {
			assert.Equal(t, string(el.Type), card.Nodes[i].Kind)
		}
	})

	t.Run("ContentRendersVerbatim", func(t *testing.T) {
		card := Render(cfg, map[string]any{"full_name": "Jo"}, []document.FormField{nameField()})

		// The canvas variant does not substitute placeholders.
		var dynamic *Node
		for i := range card.Nodes {
			if card.Nodes[i].Text == "{Full Name}" {
				dynamic = &card.Nodes[i]
			}
		}
		require.NotNil(t, dynamic)
	})

	t.Run("AnchorFollowsTextAlign", func(t *testing.T) {
		cfg := document.StoryConfig{Canvas: &document.CanvasStory{
			BackgroundColor: "#000",
			Elements: []document.StoryElement{
				{ID: "a", Type: document.ElementText, Style: document.ElementStyle{TextAlign: "center"}},
				{ID: "b", Type: document.ElementText, Style: document.ElementStyle{TextAlign: "right"}},
				{ID: "c", Type: document.ElementText},
				{ID: "d", Type: document.ElementShape},
			},
		}}

		card := Render(cfg, nil, nil)

		assert.Equal(t, "center", card.Nodes[0].Anchor)
		assert.Equal(t, "right", card.Nodes[1].Anchor)
		assert.Equal(t, "left", card.Nodes[2].Anchor)
		assert.Equal(t, "left", card.Nodes[3].Anchor)
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := Render(cfg, nil, nil)
		second := Render(cfg, nil, nil)
		assert.Equal(t, first, second)
	})
}

func TestRenderTemplate(t *testing.T) {
	tpl := func() document.StoryConfig {
		return document.StoryConfig{Template: &document.TemplateStory{
			Template:            document.TemplateGradient,
			PrimaryText:         "YOU'RE IN!",
			SecondaryText:       "See you there",
			ShowParticipantName: true,
		}}
	}

	texts := func(card Card) []string {
		out := make([]string, len(card.Nodes))
		for i, n := range card.Nodes {
			out[i] = n.Text
		}
		return out
	}

	t.Run("ThemeLookup", func(t *testing.T) {
		card := Render(tpl(), nil, nil)
		assert.Equal(t, "template", card.Variant)
		assert.Equal(t, "linear-gradient(135deg,#6366F1,#A855F7)", card.Background)
		assert.Equal(t, "#FFFFFF", card.TextColor)
	})

	t.Run("UnknownTemplateFallsBackToGradient", func(t *testing.T) {
		cfg := tpl()
		cfg.Template.Template = "sparkle"
		card := Render(cfg, nil, nil)
		assert.Equal(t, "linear-gradient(135deg,#6366F1,#A855F7)", card.Background)
	})

	t.Run("PreviewUsesPlaceholderName", func(t *testing.T) {
		card := Render(tpl(), nil, nil)
		assert.Contains(t, texts(card), "Alex Chen")
	})

	t.Run("NameResolvedFromAnswer", func(t *testing.T) {
		card := Render(tpl(), map[string]any{"full_name": "Jo"}, []document.FormField{nameField()})
		assert.Contains(t, texts(card), "Jo")
		assert.NotContains(t, texts(card), "Alex Chen")
	})

	t.Run("NameFieldMatchedByID", func(t *testing.T) {
		fields := []document.FormField{{ID: "name", Label: "Identifier"}}
		card := Render(tpl(), map[string]any{"name": "Sam"}, fields)
		assert.Contains(t, texts(card), "Sam")
	})

	t.Run("MissingAnswerFallsBack", func(t *testing.T) {
		card := Render(tpl(), map[string]any{}, []document.FormField{nameField()})
		assert.Contains(t, texts(card), "Participant")
	})

	t.Run("NoNameFieldFallsBack", func(t *testing.T) {
		fields := []document.FormField{{ID: "q1", Label: "Favorite color", ShowInStory: true}}
		card := Render(tpl(), map[string]any{"q1": "blue"}, fields)
		assert.Contains(t, texts(card), "Participant")
	})

	t.Run("StoryFieldsRenderLabelAndAnswer", func(t *testing.T) {
		fields := []document.FormField{
			nameField(),
			{ID: "role", Label: "Role", ShowInStory: true},
			{ID: "email", Label: "Email", ShowInStory: false},
		}
		data := map[string]any{"full_name": "Jo", "role": "Speaker", "email": "jo@example.com"}

		card := Render(tpl(), data, fields)

		got := texts(card)
		assert.Contains(t, got, "Role")
		assert.Contains(t, got, "Speaker")
		assert.NotContains(t, got, "Email")
		assert.NotContains(t, got, "jo@example.com")
		// The name field renders in its own slot, not as a labeled pair.
		assert.NotContains(t, got, "Full Name")
	})

	t.Run("PreviewSkipsStoryFields", func(t *testing.T) {
		fields := []document.FormField{{ID: "role", Label: "Role", ShowInStory: true}}
		card := Render(tpl(), nil, fields)
		assert.NotContains(t, texts(card), "Role")
	})

	t.Run("BrandMarkAlwaysPresent", func(t *testing.T) {
		card := Render(tpl(), nil, nil)
		assert.Contains(t, texts(card), "WrappedForm")
	})

	t.Run("ShowDateUsesClock", func(t *testing.T) {
		restore := timeNow
		timeNow = func() time.Time { return time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC) }
		defer func() { timeNow = restore }()

		cfg := tpl()
		cfg.Template.ShowDate = true
		card := Render(cfg, nil, nil)

		assert.Contains(t, texts(card), "Mar 9, 2025")
	})

	t.Run("EmptyConfigRendersEmptyCard", func(t *testing.T) {
		card := Render(document.StoryConfig{}, nil, nil)
		assert.Empty(t, card.Variant)
		assert.Empty(t, card.Nodes)
	})
}

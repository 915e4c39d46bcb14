package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm(t *testing.T) {
	form := NewForm()

	assert.Equal(t, NewFormID, form.ID)
	assert.Equal(t, StatusDraft, form.Status)
	require.Len(t, form.Fields, 2)
	assert.Equal(t, "Full Name", form.Fields[0].Label)
	assert.True(t, form.Fields[0].ShowInStory)
	assert.Equal(t, FieldEmail, form.Fields[1].Type)
	assert.True(t, form.Story.IsCanvas())
	assert.Len(t, form.Landing.Blocks, 2)

	// Each call owns its slices.
	other := NewForm()
	form.Fields[0].Label = "changed"
	assert.Equal(t, "Full Name", other.Fields[0].Label)
}

func TestStoryConfigJSON(t *testing.T) {
	t.Run("CanvasRoundTrip", func(t *testing.T) {
		cfg := DefaultStoryConfig()

		data, err := json.Marshal(cfg)
		require.NoError(t, err)

		var decoded StoryConfig
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, decoded.IsCanvas())
		assert.Nil(t, decoded.Template)
		assert.Equal(t, cfg.Canvas, decoded.Canvas)
	})

	t.Run("TemplateRoundTrip", func(t *testing.T) {
		cfg := StoryConfig{Template: &TemplateStory{
			Template:            TemplateNeon,
			AccentColor:         "#4ADE80",
			PrimaryText:         "YOU'RE IN!",
			SecondaryText:       "See you there",
			ShowDate:            true,
			ShowParticipantName: true,
		}}

		data, err := json.Marshal(cfg)
		require.NoError(t, err)

		var decoded StoryConfig
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.False(t, decoded.IsCanvas())
		require.NotNil(t, decoded.Template)
		assert.Equal(t, cfg.Template, decoded.Template)
	})

	t.Run("DiscriminatesOnElementsKey", func(t *testing.T) {
		var cfg StoryConfig
		require.NoError(t, json.Unmarshal([]byte(`{"backgroundColor":"#000","elements":[]}`), &cfg))
		assert.True(t, cfg.IsCanvas())
	})

	t.Run("DiscriminatesOnTemplateKey", func(t *testing.T) {
		var cfg StoryConfig
		require.NoError(t, json.Unmarshal([]byte(`{"template":"minimal","primaryText":"Hi"}`), &cfg))
		require.NotNil(t, cfg.Template)
		assert.Equal(t, TemplateMinimal, cfg.Template.Template)
	})

	t.Run("UnknownShapeFallsBackToCanvas", func(t *testing.T) {
		var cfg StoryConfig
		require.NoError(t, json.Unmarshal([]byte(`{"backgroundColor":"#123456"}`), &cfg))
		require.NotNil(t, cfg.Canvas)
		assert.Equal(t, "#123456", cfg.Canvas.BackgroundColor)
	})

	t.Run("NullDecodesToEmpty", func(t *testing.T) {
		cfg := DefaultStoryConfig()
		require.NoError(t, json.Unmarshal([]byte(`null`), &cfg))
		assert.Nil(t, cfg.Canvas)
		assert.Nil(t, cfg.Template)
	})

	t.Run("OpacitySurvivesRoundTrip", func(t *testing.T) {
		cfg := DefaultStoryConfig()

		data, err := json.Marshal(cfg)
		require.NoError(t, err)
		var decoded StoryConfig
		require.NoError(t, json.Unmarshal(data, &decoded))

		// bg-shape-1 carries opacity 0.1; zero would be a lost value.
		require.NotNil(t, decoded.Canvas.Elements[0].Style.Opacity)
		assert.Equal(t, 0.1, *decoded.Canvas.Elements[0].Style.Opacity)
	})
}

func TestFormJSON(t *testing.T) {
	t.Run("StoryConfigKeyName", func(t *testing.T) {
		form := NewForm()
		data, err := json.Marshal(form)
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Contains(t, raw, "storyConfig")
		assert.Contains(t, raw, "landingConfig")
		assert.NotContains(t, raw, "story_config")
	})

	t.Run("CloneIsDeep", func(t *testing.T) {
		form := NewForm()
		clone := form.Clone()

		clone.Fields[0].Label = "changed"
		clone.Story.Canvas.Elements[0].X = 99

		assert.Equal(t, "Full Name", form.Fields[0].Label)
		assert.Equal(t, 10.0, form.Story.Canvas.Elements[0].X)
	})
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrappedform/wrappedform/document"
)

func TestFormRecordRoundTrip(t *testing.T) {
	t.Run("ReproducesFormExactly", func(t *testing.T) {
		form := document.NewForm()
		form.ID = "11111111-1111-1111-1111-111111111111"
		form.UserID = "1"
		form.Stats = document.Stats{Views: 3, Submissions: 2, Shares: 1}

		rec, err := recordFromForm(form)
		require.NoError(t, err)
		back, err := formFromRecord(rec)
		require.NoError(t, err)

		assert.Equal(t, form, back)
	})

	t.Run("StoryConfigColumnRename", func(t *testing.T) {
		rec, err := recordFromForm(document.NewForm())
		require.NoError(t, err)

		// The jsonb payload itself keeps the document's key names; only
		// the column is named story_config.
		assert.Contains(t, string(rec.StoryConfig), "elements")
		assert.NotContains(t, string(rec.StoryConfig), "story_config")
	})

	t.Run("TemplateVariantSurvives", func(t *testing.T) {
		form := document.NewForm()
		form.Story = document.StoryConfig{Template: &document.TemplateStory{
			Template:    document.TemplateBold,
			PrimaryText: "YOU'RE IN!",
			ShowDate:    true,
		}}

		rec, err := recordFromForm(form)
		require.NoError(t, err)
		back, err := formFromRecord(rec)
		require.NoError(t, err)

		require.NotNil(t, back.Story.Template)
		assert.Nil(t, back.Story.Canvas)
		assert.Equal(t, form.Story.Template, back.Story.Template)
	})
}

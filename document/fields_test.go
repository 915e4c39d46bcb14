package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func typePtr(t FieldType) *FieldType { return &t }

func TestFieldEditor(t *testing.T) {
	t.Run("AddField", func(t *testing.T) {
		form := NewForm()
		before := len(form.Fields)

		field := form.AddField()

		assert.Len(t, form.Fields, before+1)
		assert.NotEmpty(t, field.ID)
		assert.Equal(t, FieldText, field.Type)
		assert.Equal(t, "New Question", field.Label)
		assert.True(t, field.Required)
		assert.Nil(t, field.Options)
	})

	t.Run("AddThenRemoveRestoresFields", func(t *testing.T) {
		form := NewForm()
		ids := []string{}
		for _, f := range form.Fields {
			ids = append(ids, f.ID)
		}

		field := form.AddField()
		assert.True(t, form.RemoveField(field.ID))

		assert.Len(t, form.Fields, len(ids))
		for i, f := range form.Fields {
			assert.Equal(t, ids[i], f.ID)
		}
	})

	t.Run("RemoveUnknownField", func(t *testing.T) {
		form := NewForm()
		assert.False(t, form.RemoveField("missing"))
	})

	t.Run("UpdateFieldMergesPatch", func(t *testing.T) {
		form := NewForm()
		id := form.Fields[0].ID

		ok := form.UpdateField(id, FieldPatch{
			Label:       strPtr("Your Name"),
			Placeholder: strPtr("Jane Doe"),
		})

		assert.True(t, ok)
		field := form.FindField(id)
		assert.Equal(t, "Your Name", field.Label)
		assert.Equal(t, "Jane Doe", field.Placeholder)
		// Untouched values survive.
		assert.True(t, field.Required)
		assert.Equal(t, FieldText, field.Type)
	})

	t.Run("SwitchToSelectSeedsOptions", func(t *testing.T) {
		form := NewForm()
		field := form.AddField()

		form.UpdateField(field.ID, FieldPatch{Type: typePtr(FieldSelect)})

		field = form.FindField(field.ID)
		assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, field.Options)
	})

	t.Run("SwitchKeepsExistingOptions", func(t *testing.T) {
		form := NewForm()
		field := form.AddField()
		custom := []string{"Red", "Green"}
		form.UpdateField(field.ID, FieldPatch{Type: typePtr(FieldSelect), Options: &custom})

		form.UpdateField(field.ID, FieldPatch{Type: typePtr(FieldDropdown)})

		field = form.FindField(field.ID)
		assert.Equal(t, []string{"Red", "Green"}, field.Options)
	})

	t.Run("SwitchToTextKeepsOptions", func(t *testing.T) {
		form := NewForm()
		field := form.AddField()
		form.UpdateField(field.ID, FieldPatch{Type: typePtr(FieldSelect)})

		form.UpdateField(field.ID, FieldPatch{Type: typePtr(FieldText)})

		field = form.FindField(field.ID)
		assert.Len(t, field.Options, 3)
	})
}

func TestMoveOption(t *testing.T) {
	setup := func() (*Form, string) {
		form := NewForm()
		field := form.AddField()
		form.UpdateField(field.ID, FieldPatch{Type: typePtr(FieldSelect)})
		return form, field.ID
	}

	t.Run("MoveUpSwapsWithPrevious", func(t *testing.T) {
		form, id := setup()
		form.MoveOption(id, 1, MoveUp)
		assert.Equal(t, []string{"Option 2", "Option 1", "Option 3"}, form.FindField(id).Options)
	})

	t.Run("MoveDownSwapsWithNext", func(t *testing.T) {
		form, id := setup()
		form.MoveOption(id, 1, MoveDown)
		assert.Equal(t, []string{"Option 1", "Option 3", "Option 2"}, form.FindField(id).Options)
	})

	t.Run("UpThenDownIsIdentity", func(t *testing.T) {
		form, id := setup()
		form.MoveOption(id, 1, MoveUp)
		form.MoveOption(id, 0, MoveDown)
		assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, form.FindField(id).Options)
	})

	t.Run("BoundaryMovesAreNoOps", func(t *testing.T) {
		form, id := setup()
		form.MoveOption(id, 0, MoveUp)
		form.MoveOption(id, 2, MoveDown)
		assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, form.FindField(id).Options)
	})

	t.Run("OutOfRangeIndexIsNoOp", func(t *testing.T) {
		form, id := setup()
		form.MoveOption(id, -1, MoveUp)
		form.MoveOption(id, 5, MoveDown)
		assert.Equal(t, []string{"Option 1", "Option 2", "Option 3"}, form.FindField(id).Options)
	})

	t.Run("FieldWithoutOptionsIsNoOp", func(t *testing.T) {
		form := NewForm()
		form.MoveOption(form.Fields[0].ID, 0, MoveUp)
		assert.Nil(t, form.Fields[0].Options)
	})
}

package document

// Field editor operations. Each mutation touches only the field addressed
// by id; all other fields keep their identity and order.

var defaultOptions = []string{"Option 1", "Option 2", "Option 3"}

// FieldPatch is a partial update for a single field. Nil pointers leave
// the corresponding field value untouched.
type FieldPatch struct {
	Type        *FieldType `json:"type,omitempty"`
	Label       *string    `json:"label,omitempty"`
	Placeholder *string    `json:"placeholder,omitempty"`
	Required    *bool      `json:"required,omitempty"`
	ShowInStory *bool      `json:"showInStory,omitempty"`
	Options     *[]string  `json:"options,omitempty"`
}

// AddField appends a new question with a fresh id and the default
// settings, and returns it.
func (f *Form) AddField() *FormField {
	field := FormField{
		ID:       newID("f"),
		Type:     FieldText,
		Label:    "New Question",
		Required: true,
	}
	f.Fields = append(f.Fields, field)
	return &f.Fields[len(f.Fields)-1]
}

// UpdateField merges patch into the field with the given id. Switching
// the type to select or dropdown seeds three placeholder options, but
// only when the field has none yet; existing options survive type
// switches. Returns false when no field matches.
func (f *Form) UpdateField(id string, patch FieldPatch) bool {
	field := f.FindField(id)
	if field == nil {
		return false
	}

	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.ShowInStory != nil {
		field.ShowInStory = *patch.ShowInStory
	}
	if patch.Options != nil {
		field.Options = *patch.Options
	}
	if patch.Type != nil {
		field.Type = *patch.Type
		if field.Type.HasOptions() && len(field.Options) == 0 {
			field.Options = append([]string(nil), defaultOptions...)
		}
	}
	return true
}

// RemoveField deletes the field with the given id, leaving every other
// field's id and position intact. Returns false when no field matches.
func (f *Form) RemoveField(id string) bool {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			f.Fields = append(f.Fields[:i], f.Fields[i+1:]...)
			return true
		}
	}
	return false
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// MoveOption swaps options[index] with its neighbor in the given
// direction. Out-of-range indices and moves past either boundary are
// no-ops.
func (f *Form) MoveOption(fieldID string, index int, direction MoveDirection) {
	field := f.FindField(fieldID)
	if field == nil || field.Options == nil {
		return
	}
	if index < 0 || index >= len(field.Options) {
		return
	}

	switch direction {
	case MoveUp:
		if index > 0 {
			field.Options[index], field.Options[index-1] = field.Options[index-1], field.Options[index]
		}
	case MoveDown:
		if index < len(field.Options)-1 {
			field.Options[index], field.Options[index+1] = field.Options[index+1], field.Options[index]
		}
	}
}

package document

// Story designer: edits the canvas story variant of one form. Elements
// are freely positioned in percent coordinates; paint order is array
// order and is not user-reorderable.

// styleKeys is the set of update keys that target element.style rather
// than the element itself. A single update call is classified whole:
// callers must not mix style and element keys in one call.
var styleKeys = map[string]bool{
	"color":           true,
	"fontSize":        true,
	"backgroundColor": true,
	"textAlign":       true,
	"fontWeight":      true,
}

// Designer edits the story canvas of a single form.
type Designer struct {
	Form *Form

	SelectedElementID string

	dragElementID string
}

func NewDesigner(form *Form) *Designer {
	return &Designer{Form: form}
}

// canvas returns the form's canvas story, initializing an empty one if
// the form still carries the legacy template variant or no story at all.
func (d *Designer) canvas() *CanvasStory {
	if d.Form.Story.Canvas == nil {
		d.Form.Story = StoryConfig{Canvas: &CanvasStory{BackgroundColor: "#6366F1"}}
	}
	return d.Form.Story.Canvas
}

func (d *Designer) findElement(id string) *StoryElement {
	canvas := d.Form.Story.Canvas
	if canvas == nil {
		return nil
	}
	for i := range canvas.Elements {
		if canvas.Elements[i].ID == id {
			return &canvas.Elements[i]
		}
	}
	return nil
}

// AddElement creates an element of the given type centered at (50,50)
// with type-specific defaults, selects it and returns it.
func (d *Designer) AddElement(typ ElementType) *StoryElement {
	element := StoryElement{
		ID:   newID("el"),
		Type: typ,
		X:    50,
		Y:    50,
	}
	switch typ {
	case ElementText:
		element.Content = "New Text"
		element.Style = ElementStyle{Color: "#ffffff", FontSize: 16, TextAlign: "center"}
	case ElementShape:
		element.Width = 20
		element.Height = 10
		element.Style = ElementStyle{BackgroundColor: "#ffffff"}
	}

	canvas := d.canvas()
	canvas.Elements = append(canvas.Elements, element)
	d.SelectedElementID = element.ID
	return &canvas.Elements[len(canvas.Elements)-1]
}

// UpdateElement applies updates to the element with the given id. The
// update is classified by key name: if any key belongs to the known
// style-key set, the whole update merges into element.style; otherwise
// it merges into the element itself. Numeric values follow JSON
// decoding and arrive as float64.
func (d *Designer) UpdateElement(id string, updates map[string]any) bool {
	element := d.findElement(id)
	if element == nil {
		return false
	}

	isStyle := false
	for key := range updates {
		if styleKeys[key] {
			isStyle = true
			break
		}
	}

	if isStyle {
		applyStyleUpdates(&element.Style, updates)
	} else {
		applyElementUpdates(element, updates)
	}
	return true
}

func applyStyleUpdates(style *ElementStyle, updates map[string]any) {
	for key, value := range updates {
		switch key {
		case "color":
			style.Color = asString(value)
		case "backgroundColor":
			style.BackgroundColor = asString(value)
		case "fontSize":
			style.FontSize = asFloat(value)
		case "fontWeight":
			style.FontWeight = asString(value)
		case "textAlign":
			style.TextAlign = asString(value)
		case "borderRadius":
			style.BorderRadius = asFloat(value)
		case "opacity":
			v := asFloat(value)
			style.Opacity = &v
		}
	}
}

func applyElementUpdates(element *StoryElement, updates map[string]any) {
	for key, value := range updates {
		switch key {
		case "content":
			element.Content = asString(value)
		case "x":
			element.X = asFloat(value)
		case "y":
			element.Y = asFloat(value)
		case "width":
			element.Width = asFloat(value)
		case "height":
			element.Height = asFloat(value)
		case "isDynamic":
			if b, ok := value.(bool); ok {
				element.IsDynamic = b
			}
		}
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

// RemoveElement deletes the element and clears the selection
// unconditionally.
func (d *Designer) RemoveElement(id string) bool {
	canvas := d.Form.Story.Canvas
	if canvas == nil {
		return false
	}
	for i := range canvas.Elements {
		if canvas.Elements[i].ID == id {
			canvas.Elements = append(canvas.Elements[:i], canvas.Elements[i+1:]...)
			d.SelectedElementID = ""
			return true
		}
	}
	return false
}

// Select marks an element as selected.
func (d *Designer) Select(id string) {
	if d.findElement(id) != nil {
		d.SelectedElementID = id
	}
}

// SetBackground sets the canvas background color.
func (d *Designer) SetBackground(color string) {
	d.canvas().BackgroundColor = color
}

// CanvasBounds is the on-screen bounding box of the canvas, in the
// pointer's coordinate space.
type CanvasBounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BeginElementDrag starts a free-drag of the element with the given id
// and selects it.
func (d *Designer) BeginElementDrag(id string) bool {
	if d.findElement(id) == nil {
		return false
	}
	d.dragElementID = id
	d.SelectedElementID = id
	return true
}

// DragTo maps an absolute pointer position into the 0-100 percent
// coordinate space of the canvas and updates the dragged element's
// position immediately. Position updates are live on every movement
// sample, not deferred to drop. Coordinates clamp to [0,100].
func (d *Designer) DragTo(pointerX, pointerY float64, bounds CanvasBounds) {
	if d.dragElementID == "" || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	x := clampPercent((pointerX - bounds.Left) / bounds.Width * 100)
	y := clampPercent((pointerY - bounds.Top) / bounds.Height * 100)
	d.UpdateElement(d.dragElementID, map[string]any{"x": x, "y": y})
}

// EndDrag finishes the drag. Pointer-up and pointer-leave both end it.
func (d *Designer) EndDrag() {
	d.dragElementID = ""
}

// PointerLeave cancels the interaction the same way EndDrag does; the
// last applied position stands.
func (d *Designer) PointerLeave() {
	d.EndDrag()
}

// Dragging reports whether a free-drag is in progress.
func (d *Designer) Dragging() bool { return d.dragElementID != "" }

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

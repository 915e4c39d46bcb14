// Package story renders a story card from a form's story config and,
// optionally, a participant's answers. The renderer is a pure function:
// the designer preview, the dashboard thumbnail and the post-submission
// reveal all call the same Render with different data bindings.
package story

import (
	"fmt"
	"strings"
	"time"

	"github.com/wrappedform/wrappedform/document"
)

// timeNow is swapped in tests.
var timeNow = time.Now

const brandMark = "WrappedForm"

// placeholder names used by the template variant when no participant
// data is bound, or when the data has no resolvable name field.
const (
	previewName     = "Alex Chen"
	unresolvedName  = "Participant"
	participantsTag = "PARTICIPANT"
)

// Node is one positioned element of a rendered card. X and Y are percent
// of card width/height. Anchor is the horizontal anchor rule derived
// from the element's text alignment; the vertical anchor is always the
// midpoint.
type Node struct {
	Kind   string                `json:"kind"` // text, shape, image, label
	Text   string                `json:"text,omitempty"`
	X      float64               `json:"x"`
	Y      float64               `json:"y"`
	Width  float64               `json:"width,omitempty"`
	Height float64               `json:"height,omitempty"`
	Anchor string                `json:"anchor,omitempty"`
	Style  document.ElementStyle `json:"style,omitempty"`
}

// Card is the rendered story card handed to clients.
type Card struct {
	Variant    string `json:"variant"` // template or canvas
	Background string `json:"background"`
	TextColor  string `json:"textColor,omitempty"`
	Nodes      []Node `json:"nodes"`
}

// Theme is a fixed visual theme for the template variant.
type Theme struct {
	Background string
	TextColor  string
}

var templateThemes = map[document.StoryTemplate]Theme{
	document.TemplateGradient: {Background: "linear-gradient(135deg,#6366F1,#A855F7)", TextColor: "#FFFFFF"},
	document.TemplateMinimal:  {Background: "#FFFFFF", TextColor: "#0F172A"},
	document.TemplateBold:     {Background: "#0F172A", TextColor: "#FFFFFF"},
	document.TemplateNeon:     {Background: "#09090B", TextColor: "#4ADE80"},
}

// Render maps a story config and optional participant data to a card.
// It dispatches on the config variant, holds no state and has no side
// effects; identical inputs produce identical output.
func Render(cfg document.StoryConfig, data map[string]any, fields []document.FormField) Card {
	switch {
	case cfg.Canvas != nil:
		return renderCanvas(cfg.Canvas)
	case cfg.Template != nil:
		return renderTemplate(cfg.Template, data, fields)
	}
	return Card{}
}

// renderCanvas paints elements in array order; later elements draw over
// earlier ones. Text content is rendered verbatim, including any
// {Label} placeholder pattern: substitution, if wanted, is the caller's
// job before invoking the renderer.
func renderCanvas(canvas *document.CanvasStory) Card {
	card := Card{
		Variant:    "canvas",
		Background: canvas.BackgroundColor,
		Nodes:      make([]Node, 0, len(canvas.Elements)),
	}
	for _, el := range canvas.Elements {
		node := Node{
			Kind:   string(el.Type),
			Text:   el.Content,
			X:      el.X,
			Y:      el.Y,
			Width:  el.Width,
			Height: el.Height,
			Anchor: anchorFor(el.Style.TextAlign),
			Style:  el.Style,
		}
		card.Nodes = append(card.Nodes, node)
	}
	return card
}

// anchorFor resolves the horizontal anchor rule: center-aligned text is
// centered on x, right-aligned text ends at x, everything else starts
// at x.
func anchorFor(textAlign string) string {
	switch textAlign {
	case "center", "right":
		return textAlign
	}
	return "left"
}

func renderTemplate(tpl *document.TemplateStory, data map[string]any, fields []document.FormField) Card {
	theme, ok := templateThemes[tpl.Template]
	if !ok {
		theme = templateThemes[document.TemplateGradient]
	}

	card := Card{
		Variant:    "template",
		Background: theme.Background,
		TextColor:  theme.TextColor,
	}

	headline := func(kind, text string, y, size float64, weight string) Node {
		return Node{
			Kind: kind, Text: text, X: 50, Y: y, Anchor: "center",
			Style: document.ElementStyle{Color: theme.TextColor, FontSize: size, FontWeight: weight, TextAlign: "center"},
		}
	}

	card.Nodes = append(card.Nodes, headline("text", tpl.PrimaryText, 12, 30, "900"))

	if tpl.ShowParticipantName {
		card.Nodes = append(card.Nodes,
			headline("label", participantsTag, 30, 10, "700"),
			headline("text", resolveName(data, fields), 36, 24, "800"),
		)
	}

	y := 48.0
	if data != nil {
		for _, field := range storyFields(fields) {
			card.Nodes = append(card.Nodes,
				headline("label", field.Label, y, 10, "700"),
				headline("text", answerText(data, field.ID), y+4, 18, "700"),
			)
			y += 12
		}
	}

	card.Nodes = append(card.Nodes, headline("text", tpl.SecondaryText, 80, 16, "700"))
	if tpl.ShowDate {
		card.Nodes = append(card.Nodes, headline("label", timeNow().Format("Jan 2, 2006"), 86, 10, "500"))
	}
	card.Nodes = append(card.Nodes, headline("label", brandMark, 94, 9, "900"))

	return card
}

// resolveName finds the participant's name: the first field whose id is
// "name" or whose label contains "name" (case-insensitive), in field
// order. Without data the preview placeholder is used; with data but no
// resolvable answer, a generic fallback.
func resolveName(data map[string]any, fields []document.FormField) string {
	if data == nil || fields == nil {
		return previewName
	}
	for _, field := range fields {
		if isNameField(field) {
			if value, ok := data[field.ID]; ok && fmt.Sprint(value) != "" {
				return fmt.Sprint(value)
			}
			return unresolvedName
		}
	}
	return unresolvedName
}

func isNameField(field document.FormField) bool {
	return field.ID == "name" || strings.Contains(strings.ToLower(field.Label), "name")
}

// storyFields returns the fields flagged showInStory, excluding
// name-like fields (the name renders in its own slot), in field order.
func storyFields(fields []document.FormField) []document.FormField {
	out := make([]document.FormField, 0, len(fields))
	for _, field := range fields {
		if field.ShowInStory && !isNameField(field) {
			out = append(out, field)
		}
	}
	return out
}

func answerText(data map[string]any, fieldID string) string {
	value, ok := data[fieldID]
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// Package document holds the Form document model: the ordered question
// fields, the story-card design, and the landing page blocks, plus the
// editing operations the builder performs on them. Everything here is pure
// in-memory data; persistence lives in the store package.
package document

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewFormID is the sentinel id of a draft that has never been saved.
// The store assigns a real id on first create.
const NewFormID = "new"

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldDropdown FieldType = "dropdown"
)

// HasOptions reports whether the field type carries an options list.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldDropdown
}

type FormField struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	ShowInStory bool      `json:"showInStory"`
	Options     []string  `json:"options,omitempty"`
}

type StoryTemplate string

const (
	TemplateGradient StoryTemplate = "gradient"
	TemplateMinimal  StoryTemplate = "minimal"
	TemplateBold     StoryTemplate = "bold"
	TemplateNeon     StoryTemplate = "neon"
)

// TemplateStory is the legacy fixed-theme story variant.
type TemplateStory struct {
	Template            StoryTemplate `json:"template"`
	AccentColor         string        `json:"accentColor"`
	PrimaryText         string        `json:"primaryText"`
	SecondaryText       string        `json:"secondaryText"`
	ShowDate            bool          `json:"showDate"`
	ShowParticipantName bool          `json:"showParticipantName"`
	BackgroundImage     string        `json:"backgroundImage,omitempty"`
}

type ElementType string

const (
	ElementText  ElementType = "text"
	ElementShape ElementType = "shape"
	ElementImage ElementType = "image"
)

type ElementStyle struct {
	Color           string   `json:"color,omitempty"`
	BackgroundColor string   `json:"backgroundColor,omitempty"`
	FontSize        float64  `json:"fontSize,omitempty"`
	FontWeight      string   `json:"fontWeight,omitempty"`
	TextAlign       string   `json:"textAlign,omitempty"`
	BorderRadius    float64  `json:"borderRadius,omitempty"`
	Opacity         *float64 `json:"opacity,omitempty"`
}

// StoryElement is one freely positioned object on the story canvas.
// X and Y are percent of canvas width/height; the horizontal anchor
// follows Style.TextAlign, the vertical anchor is always the midpoint.
type StoryElement struct {
	ID        string       `json:"id"`
	Type      ElementType  `json:"type"`
	Content   string       `json:"content,omitempty"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Width     float64      `json:"width,omitempty"`
	Height    float64      `json:"height,omitempty"`
	Style     ElementStyle `json:"style"`
	IsDynamic bool         `json:"isDynamic,omitempty"`
}

// CanvasStory is the canvas story variant: a background color plus
// elements painted in array order (later elements draw on top).
type CanvasStory struct {
	BackgroundColor string         `json:"backgroundColor"`
	Elements        []StoryElement `json:"elements"`
}

// StoryConfig is a tagged union of the two story shapes that coexist in
// stored forms. Exactly one of Canvas or Template is set; the tag is
// which JSON keys are present ("elements" vs "template"). The canvas
// variant is the system of record, the template variant is a fully
// supported legacy shape.
type StoryConfig struct {
	Template *TemplateStory
	Canvas   *CanvasStory
}

// IsCanvas reports whether the canvas variant is set.
func (c StoryConfig) IsCanvas() bool { return c.Canvas != nil }

func (c StoryConfig) MarshalJSON() ([]byte, error) {
	if c.Canvas != nil {
		return json.Marshal(c.Canvas)
	}
	if c.Template != nil {
		return json.Marshal(c.Template)
	}
	return []byte("null"), nil
}

func (c *StoryConfig) UnmarshalJSON(data []byte) error {
	c.Template = nil
	c.Canvas = nil
	if strings.TrimSpace(string(data)) == "null" {
		return nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if _, ok := keys["elements"]; ok {
		c.Canvas = &CanvasStory{}
		return json.Unmarshal(data, c.Canvas)
	}
	if _, ok := keys["template"]; ok {
		c.Template = &TemplateStory{}
		return json.Unmarshal(data, c.Template)
	}
	// Neither discriminator key: treat as an empty canvas config.
	c.Canvas = &CanvasStory{}
	return json.Unmarshal(data, c.Canvas)
}

type BlockType string

const (
	BlockHero     BlockType = "hero"
	BlockText     BlockType = "text"
	BlockFeatures BlockType = "features"
	BlockSpeakers BlockType = "speakers"
)

type Padding string

const (
	PaddingSmall  Padding = "sm"
	PaddingMedium Padding = "md"
	PaddingLarge  Padding = "lg"
)

type BlockStyle struct {
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	TextColor       string  `json:"textColor,omitempty"`
	TextAlign       string  `json:"textAlign,omitempty"`
	Padding         Padding `json:"padding,omitempty"`
}

type FeatureItem struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Icon  string `json:"icon,omitempty"`
}

// LandingBlock is one section of the landing page. Blocks render in
// slice order; Items is only meaningful for features blocks.
type LandingBlock struct {
	ID      string        `json:"id"`
	Type    BlockType     `json:"type"`
	Title   string        `json:"title,omitempty"`
	Content string        `json:"content,omitempty"`
	Image   string        `json:"image,omitempty"`
	Items   []FeatureItem `json:"items,omitempty"`
	Style   *BlockStyle   `json:"style,omitempty"`
}

type LandingConfig struct {
	Blocks []LandingBlock `json:"blocks"`
}

type Stats struct {
	Views       int `json:"views"`
	Submissions int `json:"submissions"`
	Shares      int `json:"shares"`
}

// Form is the aggregate root describing one campaign: questions, story
// design, landing page and counters.
type Form struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      Status        `json:"status"`
	Fields      []FormField   `json:"fields"`
	Story       StoryConfig   `json:"storyConfig"`
	Landing     LandingConfig `json:"landingConfig"`
	Stats       Stats         `json:"stats"`
	CreatedAt   string        `json:"created_at,omitempty"`
}

type Submission struct {
	ID        string         `json:"id"`
	FormID    string         `json:"form_id"`
	Data      map[string]any `json:"data"`
	CreatedAt string         `json:"created_at"`
}

// newID generates a short prefixed id for fields, blocks and elements.
func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func floatPtr(v float64) *float64 { return &v }

// NewForm returns a fresh, independently owned draft with the default
// seed fields, story design and landing page. Every call allocates new
// slices; callers never share state through defaults.
func NewForm() *Form {
	return &Form{
		ID:          NewFormID,
		Title:       "My Awesome Event",
		Description: "",
		Status:      StatusDraft,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Fields: []FormField{
			{ID: newID("f"), Type: FieldText, Label: "Full Name", Required: true, ShowInStory: true, Placeholder: "Enter your name"},
			{ID: newID("f"), Type: FieldEmail, Label: "Email", Required: true, ShowInStory: false, Placeholder: "name@example.com"},
		},
		Story:   DefaultStoryConfig(),
		Landing: DefaultLandingConfig(),
	}
}

// DefaultStoryConfig returns the seed canvas story design: a soft
// background shape, headline, dynamic participant name and brand mark.
func DefaultStoryConfig() StoryConfig {
	return StoryConfig{Canvas: &CanvasStory{
		BackgroundColor: "#6366F1",
		Elements: []StoryElement{
			{
				ID: "bg-shape-1", Type: ElementShape,
				X: 10, Y: 10, Width: 80, Height: 80,
				Style: ElementStyle{BackgroundColor: "#ffffff", Opacity: floatPtr(0.1), BorderRadius: 50},
			},
			{
				ID: "title", Type: ElementText, Content: "YOU'RE IN!",
				X: 50, Y: 20,
				Style: ElementStyle{Color: "#ffffff", FontSize: 32, FontWeight: "900", TextAlign: "center"},
			},
			{
				ID: "participant-label", Type: ElementText, Content: "PARTICIPANT",
				X: 50, Y: 35,
				Style: ElementStyle{Color: "#ffffff", FontSize: 10, FontWeight: "700", TextAlign: "center", Opacity: floatPtr(0.8)},
			},
			{
				ID: "participant-name", Type: ElementText, Content: "{Full Name}",
				X: 50, Y: 40, IsDynamic: true,
				Style: ElementStyle{Color: "#ffffff", FontSize: 24, FontWeight: "800", TextAlign: "center"},
			},
			{
				ID: "footer-text", Type: ElementText, Content: "See you at the bootcamp!",
				X: 50, Y: 70,
				Style: ElementStyle{Color: "#ffffff", FontSize: 16, FontWeight: "600", TextAlign: "center"},
			},
			{
				ID: "brand", Type: ElementText, Content: "WRAPPED FORM",
				X: 50, Y: 90,
				Style: ElementStyle{Color: "#ffffff", FontSize: 10, FontWeight: "900", TextAlign: "center", Opacity: floatPtr(0.5)},
			},
		},
	}}
}

// DefaultLandingConfig returns the seed landing page: a hero and a
// features block.
func DefaultLandingConfig() LandingConfig {
	return LandingConfig{Blocks: []LandingBlock{
		{
			ID:      newID("b"),
			Type:    BlockHero,
			Title:   "Web Dev Bootcamp Batch 10",
			Content: "Master Fullstack Development in 12 Weeks. Join the most intensive coding community.",
			Style:   &BlockStyle{TextAlign: "center", BackgroundColor: "bg-white", TextColor: "text-slate-900", Padding: PaddingLarge},
		},
		{
			ID:    newID("b"),
			Type:  BlockFeatures,
			Title: "What you will learn",
			Items: []FeatureItem{
				{Title: "React & Next.js", Desc: "Build modern UIs"},
				{Title: "Node & Go", Desc: "Scalable backends"},
				{Title: "System Design", Desc: "Architect like a pro"},
			},
			Style: &BlockStyle{TextAlign: "center", BackgroundColor: "bg-slate-50", TextColor: "text-slate-900", Padding: PaddingMedium},
		},
	}}
}

// FindField returns the field with the given id, or nil.
func (f *Form) FindField(id string) *FormField {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the form by round-tripping it through
// JSON. Used by the in-memory store to keep callers from aliasing
// stored state.
func (f *Form) Clone() *Form {
	data, err := json.Marshal(f)
	if err != nil {
		// The document model is always marshalable; a failure here is a
		// programming error.
		panic(err)
	}
	var out Form
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

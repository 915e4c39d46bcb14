// Package store is the persistence boundary. Core logic talks to the
// Store interface only; the postgres and in-memory implementations are
// selected once at process start and never branched on afterwards.
package store

import (
	"context"
	"errors"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/models"
)

var ErrNotFound = errors.New("not found")

type StatKind string

const (
	StatViews       StatKind = "views"
	StatSubmissions StatKind = "submissions"
	StatShares      StatKind = "shares"
)

// FormPatch is a partial form update. Nil sub-trees are left untouched,
// so the field editor, landing composer and story designer can each
// persist only the sub-tree they own.
type FormPatch struct {
	Title       *string                 `json:"title,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Status      *document.Status        `json:"status,omitempty"`
	Fields      *[]document.FormField   `json:"fields,omitempty"`
	Story       *document.StoryConfig   `json:"storyConfig,omitempty"`
	Landing     *document.LandingConfig `json:"landingConfig,omitempty"`
}

type Store interface {
	ListForms(ctx context.Context, userID string) ([]document.Form, error)
	GetForm(ctx context.Context, id string) (*document.Form, error)
	CreateForm(ctx context.Context, form *document.Form, userID string) (*document.Form, error)
	UpdateForm(ctx context.Context, id string, patch FormPatch) error
	DeleteForm(ctx context.Context, id string) error
	IncrementStat(ctx context.Context, formID string, stat StatKind) error

	CreateSubmission(ctx context.Context, formID string, data map[string]any) (string, error)
	ListSubmissions(ctx context.Context, formID string) ([]document.Submission, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error

	CreateWebhook(ctx context.Context, hook *models.Webhook) error
	ListWebhooks(ctx context.Context, userID uint) ([]models.Webhook, error)
	ListFormWebhooks(ctx context.Context, formID string) ([]models.Webhook, error)
	UpdateWebhook(ctx context.Context, id uint, hook *models.Webhook) error
	DeleteWebhook(ctx context.Context, id uint) error
}

// Active is the store the process runs against, chosen in main.
var Active Store

func applyPatch(form *document.Form, patch FormPatch) {
	if patch.Title != nil {
		form.Title = *patch.Title
	}
	if patch.Description != nil {
		form.Description = *patch.Description
	}
	if patch.Status != nil {
		form.Status = *patch.Status
	}
	if patch.Fields != nil {
		form.Fields = *patch.Fields
	}
	if patch.Story != nil {
		form.Story = *patch.Story
	}
	if patch.Landing != nil {
		form.Landing = *patch.Landing
	}
}

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/models"
)

// Memory is the demo-mode store used when no database is configured.
// Data lives for the process lifetime only.
type Memory struct {
	mu sync.Mutex

	forms       map[string]*document.Form
	formOrder   []string
	submissions map[string][]document.Submission
	users       map[uint]*models.User
	webhooks    map[uint]*models.Webhook
	nextUserID  uint
	nextHookID  uint
}

func NewMemory() *Memory {
	return &Memory{
		forms:       make(map[string]*document.Form),
		submissions: make(map[string][]document.Submission),
		users:       make(map[uint]*models.User),
		webhooks:    make(map[uint]*models.Webhook),
		nextUserID:  1,
		nextHookID:  1,
	}
}

func (m *Memory) ListForms(ctx context.Context, userID string) ([]document.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []document.Form{}
	for _, id := range m.formOrder {
		form := m.forms[id]
		if form.UserID == userID {
			out = append(out, *form.Clone())
		}
	}
	// Newest first, matching the dashboard listing order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *Memory) GetForm(ctx context.Context, id string) (*document.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return form.Clone(), nil
}

func (m *Memory) CreateForm(ctx context.Context, form *document.Form, userID string) (*document.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := form.Clone()
	if stored.ID == "" || stored.ID == document.NewFormID {
		stored.ID = uuid.NewString()
	}
	stored.UserID = userID
	if stored.CreatedAt == "" {
		stored.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.forms[stored.ID] = stored
	m.formOrder = append(m.formOrder, stored.ID)
	return stored.Clone(), nil
}

func (m *Memory) UpdateForm(ctx context.Context, id string, patch FormPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[id]
	if !ok {
		return ErrNotFound
	}
	applyPatch(form, patch)
	return nil
}

func (m *Memory) DeleteForm(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.forms[id]; !ok {
		return ErrNotFound
	}
	delete(m.forms, id)
	for i, fid := range m.formOrder {
		if fid == id {
			m.formOrder = append(m.formOrder[:i], m.formOrder[i+1:]...)
			break
		}
	}
	delete(m.submissions, id)
	return nil
}

func (m *Memory) IncrementStat(ctx context.Context, formID string, stat StatKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[formID]
	if !ok {
		return ErrNotFound
	}
	switch stat {
	case StatViews:
		form.Stats.Views++
	case StatSubmissions:
		form.Stats.Submissions++
	case StatShares:
		form.Stats.Shares++
	}
	return nil
}

func (m *Memory) CreateSubmission(ctx context.Context, formID string, data map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.forms[formID]; !ok {
		return "", ErrNotFound
	}
	sub := document.Submission{
		ID:        uuid.NewString(),
		FormID:    formID,
		Data:      data,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	m.submissions[formID] = append(m.submissions[formID], sub)
	return sub.ID, nil
}

func (m *Memory) ListSubmissions(ctx context.Context, formID string) ([]document.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]document.Submission{}, m.submissions[formID]...), nil
}

func (m *Memory) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return errors.New("email already registered")
		}
	}
	user.ID = m.nextUserID
	m.nextUserID++
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.GoogleID != nil && *user.GoogleID == googleID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUser(ctx context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *Memory) SaveUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *Memory) CreateWebhook(ctx context.Context, hook *models.Webhook) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	hook.ID = m.nextHookID
	m.nextHookID++
	copied := *hook
	m.webhooks[hook.ID] = &copied
	return nil
}

func (m *Memory) ListWebhooks(ctx context.Context, userID uint) ([]models.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Webhook{}
	for _, hook := range m.webhooks {
		if hook.UserID == userID {
			out = append(out, *hook)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListFormWebhooks(ctx context.Context, formID string) ([]models.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Webhook{}
	for _, hook := range m.webhooks {
		if hook.FormID == formID {
			out = append(out, *hook)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpdateWebhook(ctx context.Context, id uint, hook *models.Webhook) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.webhooks[id]
	if !ok {
		return ErrNotFound
	}
	existing.URL = hook.URL
	existing.Events = hook.Events
	existing.Secret = hook.Secret
	return nil
}

func (m *Memory) DeleteWebhook(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.webhooks, id)
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wrappedform/wrappedform/document"
	"github.com/wrappedform/wrappedform/models"
)

type postgresStore struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) Store {
	return &postgresStore{db: db}
}

func recordFromForm(form *document.Form) (*models.FormRecord, error) {
	fields, err := json.Marshal(form.Fields)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}
	storyCfg, err := json.Marshal(form.Story)
	if err != nil {
		return nil, fmt.Errorf("marshal story config: %w", err)
	}
	landing, err := json.Marshal(form.Landing)
	if err != nil {
		return nil, fmt.Errorf("marshal landing config: %w", err)
	}
	stats, err := json.Marshal(form.Stats)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	return &models.FormRecord{
		ID:            form.ID,
		UserID:        form.UserID,
		Title:         form.Title,
		Description:   form.Description,
		Status:        string(form.Status),
		Fields:        fields,
		StoryConfig:   storyCfg,
		LandingConfig: landing,
		Stats:         stats,
		CreatedAt:     form.CreatedAt,
	}, nil
}

func formFromRecord(rec *models.FormRecord) (*document.Form, error) {
	form := &document.Form{
		ID:          rec.ID,
		UserID:      rec.UserID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      document.Status(rec.Status),
		CreatedAt:   rec.CreatedAt,
	}
	if len(rec.Fields) > 0 {
		if err := json.Unmarshal(rec.Fields, &form.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal fields: %w", err)
		}
	}
	if len(rec.StoryConfig) > 0 {
		if err := json.Unmarshal(rec.StoryConfig, &form.Story); err != nil {
			return nil, fmt.Errorf("unmarshal story config: %w", err)
		}
	}
	if len(rec.LandingConfig) > 0 {
		if err := json.Unmarshal(rec.LandingConfig, &form.Landing); err != nil {
			return nil, fmt.Errorf("unmarshal landing config: %w", err)
		}
	}
	if len(rec.Stats) > 0 {
		if err := json.Unmarshal(rec.Stats, &form.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
	}
	return form, nil
}

func (s *postgresStore) ListForms(ctx context.Context, userID string) ([]document.Form, error) {
	var records []models.FormRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]document.Form, 0, len(records))
	for i := range records {
		form, err := formFromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *form)
	}
	return out, nil
}

func (s *postgresStore) GetForm(ctx context.Context, id string) (*document.Form, error) {
	var rec models.FormRecord
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return formFromRecord(&rec)
}

func (s *postgresStore) CreateForm(ctx context.Context, form *document.Form, userID string) (*document.Form, error) {
	stored := form.Clone()
	if stored.ID == "" || stored.ID == document.NewFormID {
		stored.ID = uuid.NewString()
	}
	stored.UserID = userID
	if stored.CreatedAt == "" {
		stored.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	rec, err := recordFromForm(stored)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

func (s *postgresStore) UpdateForm(ctx context.Context, id string, patch FormPatch) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.FormRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		form, err := formFromRecord(&rec)
		if err != nil {
			return err
		}
		applyPatch(form, patch)
		updated, err := recordFromForm(form)
		if err != nil {
			return err
		}
		return tx.Model(&models.FormRecord{}).Where("id = ?", id).Updates(map[string]any{
			"title":          updated.Title,
			"description":    updated.Description,
			"status":         updated.Status,
			"fields":         updated.Fields,
			"story_config":   updated.StoryConfig,
			"landing_config": updated.LandingConfig,
		}).Error
	})
}

func (s *postgresStore) DeleteForm(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.FormRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Delete(&models.SubmissionRecord{}, "form_id = ?", id).Error
	})
}

func (s *postgresStore) IncrementStat(ctx context.Context, formID string, stat StatKind) error {
	// Stats live inside the jsonb column, so the bump is a single
	// server-side jsonb_set to stay safe under concurrent submissions.
	res := s.db.WithContext(ctx).Exec(
		`UPDATE forms
		 SET stats = jsonb_set(stats, ARRAY[?::text],
		     (COALESCE(stats->>?, '0')::int + 1)::text::jsonb)
		 WHERE id = ?`,
		string(stat), string(stat), formID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) CreateSubmission(ctx context.Context, formID string, data map[string]any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal submission data: %w", err)
	}
	rec := models.SubmissionRecord{
		ID:        uuid.NewString(),
		FormID:    formID,
		Data:      payload,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (s *postgresStore) ListSubmissions(ctx context.Context, formID string) ([]document.Submission, error) {
	var records []models.SubmissionRecord
	if err := s.db.WithContext(ctx).
		Where("form_id = ?", formID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]document.Submission, 0, len(records))
	for _, rec := range records {
		sub := document.Submission{ID: rec.ID, FormID: rec.FormID, CreatedAt: rec.CreatedAt}
		if len(rec.Data) > 0 {
			if err := json.Unmarshal(rec.Data, &sub.Data); err != nil {
				return nil, fmt.Errorf("unmarshal submission data: %w", err)
			}
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *postgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *postgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *postgresStore) GetUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *postgresStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *postgresStore) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *postgresStore) CreateWebhook(ctx context.Context, hook *models.Webhook) error {
	return s.db.WithContext(ctx).Create(hook).Error
}

func (s *postgresStore) ListWebhooks(ctx context.Context, userID uint) ([]models.Webhook, error) {
	var hooks []models.Webhook
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&hooks).Error; err != nil {
		return nil, err
	}
	return hooks, nil
}

func (s *postgresStore) ListFormWebhooks(ctx context.Context, formID string) ([]models.Webhook, error) {
	var hooks []models.Webhook
	if err := s.db.WithContext(ctx).Where("form_id = ?", formID).Find(&hooks).Error; err != nil {
		return nil, err
	}
	return hooks, nil
}

func (s *postgresStore) UpdateWebhook(ctx context.Context, id uint, hook *models.Webhook) error {
	res := s.db.WithContext(ctx).Model(&models.Webhook{}).Where("id = ?", id).Updates(map[string]any{
		"url":    hook.URL,
		"events": hook.Events,
		"secret": hook.Secret,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) DeleteWebhook(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Webhook{}, id).Error
}

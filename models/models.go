package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string  `gorm:"uniqueIndex" json:"email"`
	FullName     string  `json:"full_name"`
	GoogleID     *string `gorm:"uniqueIndex" json:"-"`
	Picture      string  `json:"picture,omitempty"`
	PasswordHash string  `json:"-"`
}

// FormRecord is the stored shape of a document.Form. The fields, story,
// landing and stats sub-trees are kept as jsonb documents; the only
// naming transform at this boundary is storyConfig <-> story_config.
type FormRecord struct {
	ID            string `gorm:"type:uuid;primaryKey"`
	UserID        string `gorm:"index"`
	Title         string
	Description   string
	Status        string
	Fields        datatypes.JSON `gorm:"type:jsonb"`
	StoryConfig   datatypes.JSON `gorm:"column:story_config;type:jsonb"`
	LandingConfig datatypes.JSON `gorm:"column:landing_config;type:jsonb"`
	Stats         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     string
}

func (FormRecord) TableName() string { return "forms" }

type SubmissionRecord struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	FormID    string         `gorm:"index"`
	Data      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt string
}

func (SubmissionRecord) TableName() string { return "submissions" }

type Webhook struct {
	gorm.Model
	UserID uint   `json:"user_id"`
	FormID string `gorm:"index" json:"form_id"`
	URL    string `json:"url"`
	Events string `json:"events"`
	Secret string `json:"secret"`
}

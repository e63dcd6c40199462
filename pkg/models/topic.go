package models

import (
	"errors"
	"strings"
	"time"
)

// Topic represents an offering owned by a single tutor
type Topic struct {
	ID          int64     `json:"id" db:"id"`
	TutorID     int64     `json:"tutor_id" db:"tutor_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"topic_description"`
	Format      *string   `json:"format" db:"format"`
	Duration    *string   `json:"duration" db:"duration"`
	Level       *string   `json:"level" db:"topic_level"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateTopic holds the fields for a new topic under TutorID
type CreateTopic struct {
	TutorID     int64   `json:"tutor_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Format      *string `json:"format"`
	Duration    *string `json:"duration"`
	Level       *string `json:"level"`
}

// UpdateTopic is a partial update of a topic
type UpdateTopic struct {
	Title       Field[string] `json:"title"`
	Description Field[string] `json:"description"`
	Format      Field[string] `json:"format"`
	Duration    Field[string] `json:"duration"`
	Level       Field[string] `json:"level"`
}

// Apply merges the update onto current, stamping UpdatedAt with now.
// Optional fields left unset and never set before become empty strings.
func (u UpdateTopic) Apply(current Topic, now time.Time) Topic {
	return Topic{
		ID:          current.ID,
		TutorID:     current.TutorID,
		Title:       u.Title.Or(current.Title),
		Description: orEmpty(u.Description, current.Description),
		Format:      orEmpty(u.Format, current.Format),
		Duration:    orEmpty(u.Duration, current.Duration),
		Level:       orEmpty(u.Level, current.Level),
		CreatedAt:   current.CreatedAt,
		UpdatedAt:   now,
	}
}

// Validate checks the fields a topic cannot be created without.
func (c CreateTopic) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("title must not be empty")
	}
	return nil
}

// Validate rejects updates that would blank the title.
func (u UpdateTopic) Validate() error {
	if u.Title.Set && strings.TrimSpace(u.Title.Value) == "" {
		return errors.New("title must not be empty")
	}
	return nil
}

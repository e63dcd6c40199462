package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/tutorhub/internal/apperr"
	"github.com/example/tutorhub/pkg/models"
	"github.com/jmoiron/sqlx"
)

const topicColumns = "id, tutor_id, title, topic_description, format, duration, topic_level, created_at, updated_at"

// TopicRepository handles database operations for topics
type TopicRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewTopicRepository creates a new repository instance
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source
func (r *TopicRepository) WithClock(now func() time.Time) *TopicRepository {
	r.now = now
	return r
}

// GetAll returns every topic. An empty table is reported as not found.
func (r *TopicRepository) GetAll(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic

	err := r.db.SelectContext(ctx, &topics, "SELECT "+topicColumns+" FROM topic ORDER BY id")
	if err != nil {
		return nil, storeFailure(err)
	}

	if len(topics) == 0 {
		return nil, apperr.NotFound("No topics found")
	}

	return topics, nil
}

// GetAllByTutorID returns the topics of one tutor, newest ID first. A tutor
// without topics yields an empty slice.
func (r *TopicRepository) GetAllByTutorID(ctx context.Context, tutorID int64) ([]models.Topic, error) {
	topics := []models.Topic{}

	query := r.db.Rebind("SELECT " + topicColumns + " FROM topic WHERE tutor_id = ? ORDER BY id DESC")
	err := r.db.SelectContext(ctx, &topics, query, tutorID)
	if err != nil {
		return nil, storeFailure(err)
	}

	return topics, nil
}

// GetByID returns a topic by ID
func (r *TopicRepository) GetByID(ctx context.Context, topicID int64) (*models.Topic, error) {
	var topic models.Topic

	query := r.db.Rebind("SELECT " + topicColumns + " FROM topic WHERE id = ?")
	err := r.db.GetContext(ctx, &topic, query, topicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No topic found for topic_id: %d", topicID)
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	return &topic, nil
}

// Create inserts a topic under in.TutorID. A missing tutor surfaces as a
// store failure from the foreign key.
func (r *TopicRepository) Create(ctx context.Context, in models.CreateTopic) (*models.Topic, error) {
	if err := in.Validate(); err != nil {
		return nil, apperr.InvalidInput("%s", err.Error())
	}

	now := r.now()
	query := `
		INSERT INTO topic (
			tutor_id, title, topic_description, format, duration, topic_level, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := insertID(ctx, r.db, query,
		in.TutorID,
		in.Title,
		in.Description,
		in.Format,
		in.Duration,
		in.Level,
		now,
		now,
	)
	if err != nil {
		return nil, storeFailure(err)
	}

	topic, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	return topic, nil
}

// Update merges a partial update onto the topic identified by both tutorID
// and topicID. A topic owned by another tutor is not found, and so is a
// failed write.
func (r *TopicRepository) Update(ctx context.Context, tutorID, topicID int64, upd models.UpdateTopic) (*models.Topic, error) {
	if err := upd.Validate(); err != nil {
		return nil, apperr.InvalidInput("%s", err.Error())
	}

	current, err := r.getOwned(ctx, tutorID, topicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("Topic id not found")
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	merged := upd.Apply(*current, r.now())

	query := r.db.Rebind(`
		UPDATE topic
		SET title = ?,
			topic_description = ?,
			format = ?,
			duration = ?,
			topic_level = ?,
			updated_at = ?
		WHERE id = ? AND tutor_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		merged.Title,
		merged.Description,
		merged.Format,
		merged.Duration,
		merged.Level,
		merged.UpdatedAt,
		topicID,
		tutorID,
	)
	if err != nil {
		return nil, apperr.NotFoundCause(err, "Topic id not found")
	}
	if rows, err := result.RowsAffected(); err != nil || rows == 0 {
		return nil, apperr.NotFoundCause(err, "Topic id not found")
	}

	topic, err := r.getOwned(ctx, tutorID, topicID)
	if err != nil {
		return nil, apperr.NotFoundCause(err, "Topic id not found")
	}
	return topic, nil
}

func (r *TopicRepository) getOwned(ctx context.Context, tutorID, topicID int64) (*models.Topic, error) {
	var topic models.Topic
	query := r.db.Rebind("SELECT " + topicColumns + " FROM topic WHERE id = ? AND tutor_id = ?")
	if err := r.db.GetContext(ctx, &topic, query, topicID, tutorID); err != nil {
		return nil, err
	}
	return &topic, nil
}

// Delete removes the topic identified by both tutorID and topicID
func (r *TopicRepository) Delete(ctx context.Context, tutorID, topicID int64) error {
	query := r.db.Rebind("DELETE FROM topic WHERE id = ? AND tutor_id = ?")

	result, err := r.db.ExecContext(ctx, query, topicID, tutorID)
	if err != nil {
		return apperr.NotFoundCause(err, "Topic id not found")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.NotFoundCause(err, "Topic id not found")
	}
	if rows == 0 {
		return apperr.NotFound("Topic id not found")
	}

	return nil
}

package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/example/tutorhub/internal/apperr"
	"github.com/example/tutorhub/pkg/models"
	"github.com/jmoiron/sqlx"
)

const tutorColumns = "id, first_name, last_name, email, profile"

// TutorRepository handles database operations for tutors
type TutorRepository struct {
	db *sqlx.DB
}

// NewTutorRepository creates a new repository instance
func NewTutorRepository(db *sqlx.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

// GetAll returns all tutors. An empty table is reported as not found.
func (r *TutorRepository) GetAll(ctx context.Context) ([]models.Tutor, error) {
	var tutors []models.Tutor

	err := r.db.SelectContext(ctx, &tutors, "SELECT "+tutorColumns+" FROM tutor ORDER BY id")
	if err != nil {
		return nil, storeFailure(err)
	}

	if len(tutors) == 0 {
		return nil, apperr.NotFound("No tutors found")
	}

	return tutors, nil
}

// Create inserts a new tutor and returns it with its assigned ID
func (r *TutorRepository) Create(ctx context.Context, in models.CreateTutor) (*models.Tutor, error) {
	query := `
		INSERT INTO tutor (first_name, last_name, email, profile)
		VALUES (?, ?, ?, ?)`

	id, err := insertID(ctx, r.db, query,
		in.FirstName,
		in.LastName,
		in.Email,
		in.Profile,
	)
	if err != nil {
		return nil, storeFailure(err)
	}

	tutor, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, storeFailure(err)
	}
	return tutor, nil
}

// GetByID returns a tutor by ID
func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*models.Tutor, error) {
	var tutor models.Tutor

	query := r.db.Rebind("SELECT " + tutorColumns + " FROM tutor WHERE id = ?")
	err := r.db.GetContext(ctx, &tutor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("No tutor found for tutor_id: %d", id)
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	return &tutor, nil
}

// Update merges a partial update onto the stored tutor and writes every
// column back. A failed write is reported as not found.
func (r *TutorRepository) Update(ctx context.Context, id int64, upd models.UpdateTutor) (*models.Tutor, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := upd.Apply(*current)

	query := r.db.Rebind(`
		UPDATE tutor
		SET first_name = ?,
			last_name = ?,
			email = ?,
			profile = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		merged.FirstName,
		merged.LastName,
		merged.Email,
		merged.Profile,
		id,
	)
	if err != nil {
		return nil, apperr.NotFoundCause(err, "Tutor id not found")
	}
	if rows, err := result.RowsAffected(); err != nil || rows == 0 {
		return nil, apperr.NotFoundCause(err, "Tutor id not found")
	}

	tutor, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFoundCause(err, "Tutor id not found")
	}
	return tutor, nil
}

// Delete removes a tutor together with all of its topics in one transaction.
// Topics go first so no topic ever points at a missing tutor.
func (r *TutorRepository) Delete(ctx context.Context, id int64) (*models.DeleteSummary, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, storeFailure(err)
	}

	// Delete owned topics
	result, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM topic WHERE tutor_id = ?"), id)
	if err != nil {
		tx.Rollback()
		return nil, storeFailure(err)
	}
	topics, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, storeFailure(err)
	}

	// Delete the tutor
	result, err = tx.ExecContext(ctx, tx.Rebind("DELETE FROM tutor WHERE id = ?"), id)
	if err != nil {
		tx.Rollback()
		return nil, storeFailure(err)
	}
	tutors, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, storeFailure(err)
	}
	if tutors == 0 {
		tx.Rollback()
		return nil, apperr.NotFound("No tutor found for tutor_id: %d", id)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeFailure(err)
	}

	return &models.DeleteSummary{
		TutorID:       id,
		TutorsDeleted: tutors,
		TopicsDeleted: topics,
	}, nil
}

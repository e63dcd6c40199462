package database

import (
	"context"
	"testing"
	"time"

	"github.com/example/tutorhub/internal/config"
	"github.com/example/tutorhub/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func openTestDB(tb testing.TB) *sqlx.DB {
	tb.Helper()
	cfg := &config.Config{
		DBDriver:     "sqlite3",
		DatabaseURL:  "file::memory:?_foreign_keys=1&_loc=UTC",
		MaxOpenConns: 1,
	}
	db, err := Connect(context.Background(), cfg)
	require.NoError(tb, err)
	tb.Cleanup(func() { db.Close() })
	return db
}

// stepClock advances one second per call so successive writes get strictly
// increasing timestamps.
type stepClock struct {
	t time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func seedTutor(tb testing.TB, repo *TutorRepository, email string) *models.Tutor {
	tb.Helper()
	tutor, err := repo.Create(context.Background(), models.CreateTutor{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Profile:   "math",
	})
	require.NoError(tb, err)
	return tutor
}

func seedTopic(tb testing.TB, repo *TopicRepository, tutorID int64, title string) *models.Topic {
	tb.Helper()
	topic, err := repo.Create(context.Background(), models.CreateTopic{TutorID: tutorID, Title: title})
	require.NoError(tb, err)
	return topic
}

func strPtr(s string) *string {
	return &s
}

func TestConnect_RequiresDatabaseURL(t *testing.T) {
	_, err := Connect(context.Background(), &config.Config{DBDriver: "sqlite3"})
	require.Error(t, err)
}

func TestConnect_SchemaIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, initializeSchema(context.Background(), db))
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/tutorhub/internal/config"
	"github.com/example/tutorhub/internal/database"
	"github.com/example/tutorhub/internal/health"
	"github.com/example/tutorhub/internal/logger"
	"github.com/example/tutorhub/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type staticHealth struct {
	status health.Status
}

func (s *staticHealth) Status() health.Status {
	return s.status
}

type testServer struct {
	router *gin.Engine
	health *staticHealth
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLogger(t, logger.Nop())
}

func newTestServerWithLogger(t *testing.T, log *logger.Logger) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(context.Background(), &config.Config{
		DBDriver:     "sqlite3",
		DatabaseURL:  "file::memory:?_foreign_keys=1&_loc=UTC",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hs := &staticHealth{status: health.Status{Healthy: true}}
	h := NewAPIHandler(
		database.NewTutorRepository(db),
		database.NewTopicRepository(db),
		hs,
		"I'm good.",
		log,
	)
	return &testServer{router: NewRouter(h, logger.Nop()), health: hs}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	return decode[errorResponse](t, w).ErrorMessage
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "I'm good.", decode[string](t, w))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	s.health.status = health.Status{Healthy: false, Err: errors.New("connection refused")}
	w = s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection refused", errorMessage(t, w))
}

func TestTutorRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/tutors/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No tutors found", errorMessage(t, w))

	w = s.do(t, http.MethodPost, "/tutors/", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.io","profile":"math"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tutor := decode[models.Tutor](t, w)
	assert.NotZero(t, tutor.ID)
	assert.Equal(t, "Ada", tutor.FirstName)

	path := fmt.Sprintf("/tutors/%d", tutor.ID)

	w = s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tutor, decode[models.Tutor](t, w))

	w = s.do(t, http.MethodPut, path, `{"profile":"engines","email":null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Tutor](t, w)
	assert.Equal(t, "engines", updated.Profile)
	assert.Equal(t, "ada@x.io", updated.Email)

	w = s.do(t, http.MethodGet, "/tutors/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Tutor](t, w), 1)

	w = s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.DeleteSummary{TutorID: tutor.ID, TutorsDeleted: 1}, decode[models.DeleteSummary](t, w))

	w = s.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTopicRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/tutors/", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.io","profile":"math"}`)
	require.Equal(t, http.StatusOK, w.Code)
	tutor := decode[models.Tutor](t, w)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/tutors/%d/topics", tutor.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(t, http.MethodGet, "/topics/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/topics/", fmt.Sprintf(`{"tutor_id":%d,"title":"Algebra"}`, tutor.ID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	topic := decode[models.Topic](t, w)
	assert.Equal(t, "Algebra", topic.Title)
	assert.Nil(t, topic.Format)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/topics/%d", topic.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/tutors/%d/%d", tutor.ID, topic.ID), `{"duration":"45m"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Topic](t, w)
	require.NotNil(t, updated.Format)
	assert.Equal(t, "", *updated.Format)
	assert.Equal(t, "45m", *updated.Duration)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/tutors/%d/%d", tutor.ID+1, topic.ID), `{"title":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Topic id not found", errorMessage(t, w))

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/tutors/%d/%d", tutor.ID+1, topic.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/tutors/%d/%d", tutor.ID, topic.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf("Topic with id: %d deleted", topic.ID), decode[string](t, w))
}

func TestInvalidInput(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"malformed json", http.MethodPost, "/tutors/", `{"first_name":`},
		{"empty body", http.MethodPost, "/topics/", ""},
		{"wrong field type", http.MethodPut, "/tutors/1", `{"email":5}`},
		{"non-numeric tutor id", http.MethodGet, "/tutors/abc", ""},
		{"non-numeric topic id", http.MethodDelete, "/tutors/1/abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}

	t.Run("blank topic title", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/topics/", `{"tutor_id":1,"title":"   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title must not be empty", errorMessage(t, w))
	})
}

func TestCreateTopicForUnknownTutorIsServerError(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/topics/", `{"tutor_id":77,"title":"Algebra"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateRequiresFields(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		path string
		body string
	}{
		{"empty tutor", "/tutors/", `{}`},
		{"tutor without profile", "/tutors/", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@x.io"}`},
		{"topic without tutor", "/topics/", `{"title":"Algebra"}`},
		{"topic without title", "/topics/", `{"tutor_id":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Invalid JSON input", errorMessage(t, w))
		})
	}

	w := s.do(t, http.MethodGet, "/tutors/", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "nothing was stored")
}

func TestErrorLogLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := newTestServerWithLogger(t, logger.FromZap(zap.New(core)))

	w := s.do(t, http.MethodGet, "/tutors/9", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPost, "/topics/", `{"tutor_id":77,"title":"Algebra"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "NotFound", entries[0].ContextMap()["kind"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "StoreFailure", entries[1].ContextMap()["kind"])
	assert.NotEmpty(t, entries[1].ContextMap()["request_id"])
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/example/tutorhub/internal/apperr"
	"github.com/example/tutorhub/internal/health"
	"github.com/example/tutorhub/internal/logger"
	"github.com/example/tutorhub/pkg/models"
	"github.com/gin-gonic/gin"
)

// TutorStore is the tutor repository as seen by the HTTP layer
type TutorStore interface {
	GetAll(ctx context.Context) ([]models.Tutor, error)
	Create(ctx context.Context, in models.CreateTutor) (*models.Tutor, error)
	GetByID(ctx context.Context, id int64) (*models.Tutor, error)
	Update(ctx context.Context, id int64, upd models.UpdateTutor) (*models.Tutor, error)
	Delete(ctx context.Context, id int64) (*models.DeleteSummary, error)
}

// TopicStore is the topic repository as seen by the HTTP layer
type TopicStore interface {
	GetAll(ctx context.Context) ([]models.Topic, error)
	GetAllByTutorID(ctx context.Context, tutorID int64) ([]models.Topic, error)
	GetByID(ctx context.Context, topicID int64) (*models.Topic, error)
	Create(ctx context.Context, in models.CreateTopic) (*models.Topic, error)
	Update(ctx context.Context, tutorID, topicID int64, upd models.UpdateTopic) (*models.Topic, error)
	Delete(ctx context.Context, tutorID, topicID int64) error
}

// HealthReporter exposes the latest store ping result
type HealthReporter interface {
	Status() health.Status
}

// APIHandler renders repository results and errors as HTTP responses
type APIHandler struct {
	tutors         TutorStore
	topics         TopicStore
	health         HealthReporter
	healthResponse string
	log            *logger.Logger
}

// NewAPIHandler creates a handler over the given repositories
func NewAPIHandler(tutors TutorStore, topics TopicStore, hr HealthReporter, healthResponse string, log *logger.Logger) *APIHandler {
	return &APIHandler{
		tutors:         tutors,
		topics:         topics,
		health:         hr,
		healthResponse: healthResponse,
		log:            log,
	}
}

type errorResponse struct {
	ErrorMessage string `json:"error_message"`
}

func (h *APIHandler) respondError(c *gin.Context, err error) {
	log := h.log.With("request_id", c.GetString(requestIDKey))
	fields := []interface{}{
		"kind", apperr.KindOf(err).String(),
		"message", apperr.Message(err),
	}
	if cause := errors.Unwrap(err); cause != nil {
		fields = append(fields, "cause", cause.Error())
	}
	if apperr.Is(err, apperr.KindStoreFailure) {
		log.Error("request failed", fields...)
	} else {
		log.Warn("request rejected", fields...)
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), errorResponse{ErrorMessage: apperr.Message(err)})
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.InvalidInput("invalid %s: %q", name, c.Param(name))
	}
	return id, nil
}

func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return &apperr.Error{Kind: apperr.KindInvalidInput, Message: "Invalid JSON input", Err: err}
	}
	return nil
}

// HealthCheck reports whether the store answered the latest ping
func (h *APIHandler) HealthCheck(c *gin.Context) {
	status := h.health.Status()
	if !status.Healthy {
		h.respondError(c, apperr.StoreFailure(status.Err))
		return
	}
	c.JSON(http.StatusOK, h.healthResponse)
}

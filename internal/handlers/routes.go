package handlers

import (
	"time"

	"github.com/example/tutorhub/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

// NewRouter builds the engine with all routes registered
func NewRouter(h *APIHandler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(log))

	router.GET("/health", h.HealthCheck)

	tutors := router.Group("/tutors")
	{
		tutors.GET("/", h.GetAllTutors)
		tutors.POST("/", h.PostNewTutor)
		tutors.GET("/:tutor_id", h.GetTutorDetails)
		tutors.PUT("/:tutor_id", h.UpdateTutorDetails)
		tutors.DELETE("/:tutor_id", h.DeleteTutor)
		tutors.GET("/:tutor_id/topics", h.GetTopicsForTutor)
		tutors.PUT("/:tutor_id/:topic_id", h.UpdateTopicDetails)
		tutors.DELETE("/:tutor_id/:topic_id", h.DeleteTopic)
	}

	topics := router.Group("/topics")
	{
		topics.GET("/", h.GetAllTopics)
		topics.POST("/", h.PostNewTopic)
		topics.GET("/:topic_id", h.GetTopicDetails)
	}

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

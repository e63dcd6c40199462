package handlers

import (
	"fmt"
	"net/http"

	"github.com/example/tutorhub/pkg/models"
	"github.com/gin-gonic/gin"
)

// GetAllTopics handles GET /topics/
func (h *APIHandler) GetAllTopics(c *gin.Context) {
	topics, err := h.topics.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// GetTopicsForTutor handles GET /tutors/:tutor_id/topics
func (h *APIHandler) GetTopicsForTutor(c *gin.Context) {
	tutorID, err := pathID(c, "tutor_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	topics, err := h.topics.GetAllByTutorID(c.Request.Context(), tutorID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// GetTopicDetails handles GET /topics/:topic_id
func (h *APIHandler) GetTopicDetails(c *gin.Context) {
	topicID, err := pathID(c, "topic_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	topic, err := h.topics.GetByID(c.Request.Context(), topicID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// PostNewTopic handles POST /topics/
func (h *APIHandler) PostNewTopic(c *gin.Context) {
	var in models.CreateTopic
	if err := bindJSON(c, &in); err != nil {
		h.respondError(c, err)
		return
	}
	topic, err := h.topics.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// UpdateTopicDetails handles PUT /tutors/:tutor_id/:topic_id
func (h *APIHandler) UpdateTopicDetails(c *gin.Context) {
	tutorID, err := pathID(c, "tutor_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	topicID, err := pathID(c, "topic_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var upd models.UpdateTopic
	if err := bindJSON(c, &upd); err != nil {
		h.respondError(c, err)
		return
	}
	topic, err := h.topics.Update(c.Request.Context(), tutorID, topicID, upd)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// DeleteTopic handles DELETE /tutors/:tutor_id/:topic_id
func (h *APIHandler) DeleteTopic(c *gin.Context) {
	tutorID, err := pathID(c, "tutor_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	topicID, err := pathID(c, "topic_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.topics.Delete(c.Request.Context(), tutorID, topicID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fmt.Sprintf("Topic with id: %d deleted", topicID))
}

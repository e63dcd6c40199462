package handlers

import (
	"net/http"

	"github.com/example/tutorhub/pkg/models"
	"github.com/gin-gonic/gin"
)

// GetAllTutors handles GET /tutors/
func (h *APIHandler) GetAllTutors(c *gin.Context) {
	tutors, err := h.tutors.GetAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tutors)
}

// PostNewTutor handles POST /tutors/
func (h *APIHandler) PostNewTutor(c *gin.Context) {
	var in models.CreateTutor
	if err := bindJSON(c, &in); err != nil {
		h.respondError(c, err)
		return
	}
	tutor, err := h.tutors.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tutor)
}

// GetTutorDetails handles GET /tutors/:tutor_id
func (h *APIHandler) GetTutorDetails(c *gin.Context) {
	id, err := pathID(c, "tutor_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	tutor, err := h.tutors.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tutor)
}

// UpdateTutorDetails handles PUT /tutors/:tutor_id
func (h *APIHandler) UpdateTutorDetails(c *gin.Context) {
	id, err := pathID(c, "tutor_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var upd models.UpdateTutor
	if err := bindJSON(c, &upd); err != nil {
		h.respondError(c, err)
		return
	}
	tutor, err := h.tutors.Update(c.Request.Context(), id, upd)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tutor)
}

// DeleteTutor handles DELETE /tutors/:tutor_id
func (h *APIHandler) DeleteTutor(c *gin.Context) {
	id, err := pathID(c, "tutor_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	summary, err := h.tutors.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

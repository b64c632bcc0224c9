package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"complaint-backend/internal/middleware"
	"complaint-backend/internal/models"
	"complaint-backend/internal/service"
)

type ComplaintHandler interface {
	Home(c *gin.Context)
	Submit(c *gin.Context)
	List(c *gin.Context)
	Recent(c *gin.Context)
}

type complaintHandler struct {
	complaintService service.ComplaintService
	log              *logrus.Logger
}

func NewComplaintHandler(complaintService service.ComplaintService, log *logrus.Logger) ComplaintHandler {
	return &complaintHandler{complaintService: complaintService, log: log}
}

// Home returns the authenticated principal's id and name claims.
func (h *complaintHandler) Home(c *gin.Context) {
	userID, ok := c.Get(middleware.CtxUserID)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":   userID,
		"name": c.GetString(middleware.CtxEmail),
	})
}

// Submit handles POST /api/complaints.
func (h *complaintHandler) Submit(c *gin.Context) {
	applicant := c.GetString(middleware.CtxUserID)

	var complaint models.Complaint
	if err := c.ShouldBindJSON(&complaint); err != nil {
		h.log.Errorf("Failed to bind complaint JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "message": err.Error()})
		return
	}

	result, err := h.complaintService.Submit(c.Request.Context(), applicant, &complaint)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// List handles GET /api/complaints with an optional ?keyword= filter.
func (h *complaintHandler) List(c *gin.Context) {
	applicant := c.GetString(middleware.CtxUserID)
	keyword := c.Query("keyword")

	complaints, err := h.complaintService.List(c.Request.Context(), applicant, keyword)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// Recent handles GET /api/complaints/recent.
func (h *complaintHandler) Recent(c *gin.Context) {
	applicant := c.GetString(middleware.CtxUserID)

	complaints, err := h.complaintService.Recent(c.Request.Context(), applicant)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, complaints)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dispora-dev/sportdev-api/internal/models"
	"github.com/dispora-dev/sportdev-api/internal/service"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
	"github.com/dispora-dev/sportdev-api/pkg/response"
)

// ResultHandler exposes raw value capture and computed result endpoints.
type ResultHandler struct {
	results *service.ResultService
}

// NewResultHandler constructs handler.
func NewResultHandler(results *service.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// Save godoc
// @Summary Record raw values and recompute results
// @Tags Results
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body service.SaveResultsRequest true "Results payload"
// @Success 200 {object} response.Envelope
// @Router /assessment/exams/{id}/results [post]
func (h *ResultHandler) Save(c *gin.Context) {
	var req service.SaveResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.ExamID = c.Param("id")
	if err := h.results.Save(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "recorded"}, nil)
}

// ByExam godoc
// @Summary List computed results for an exam
// @Tags Results
// @Produce json
// @Param id path string true "Exam ID"
// @Param kind query string false "Participant kind" Enums(ATHLETE, COACH, SUPPORT_STAFF)
// @Success 200 {object} response.Envelope
// @Router /assessment/exams/{id}/results [get]
func (h *ResultHandler) ByExam(c *gin.Context) {
	kind := models.ParticipantKind(c.Query("kind"))
	results, err := h.results.ByExam(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results, nil)
}

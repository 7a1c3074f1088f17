package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dispora-dev/sportdev-api/internal/models"
	"github.com/dispora-dev/sportdev-api/internal/service"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
	"github.com/dispora-dev/sportdev-api/pkg/response"
)

// ExamHandler exposes examination session endpoints.
type ExamHandler struct {
	exams *service.ExamService
}

// NewExamHandler constructs handler.
func NewExamHandler(exams *service.ExamService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

// Create godoc
// @Summary Schedule an examination session
// @Tags Exams
// @Accept json
// @Produce json
// @Param payload body service.CreateExamRequest true "Exam payload"
// @Success 201 {object} response.Envelope
// @Router /assessment/exams [post]
func (h *ExamHandler) Create(c *gin.Context) {
	var req service.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	exam, err := h.exams.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exam)
}

// Get godoc
// @Summary Get one examination session
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /assessment/exams/{id} [get]
func (h *ExamHandler) Get(c *gin.Context) {
	exam, err := h.exams.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exam, nil)
}

// List godoc
// @Summary List a sport's examination sessions by date
// @Tags Exams
// @Produce json
// @Param sportId path string true "Sport ID"
// @Param categoryId query string false "Restrict to one participant category"
// @Success 200 {object} response.Envelope
// @Router /assessment/sports/{sportId}/exams [get]
func (h *ExamHandler) List(c *gin.Context) {
	filter := models.ExamFilter{SportID: c.Param("sportId"), CategoryID: c.Query("categoryId")}
	exams, err := h.exams.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exams, nil)
}

// Delete godoc
// @Summary Delete an examination session and its results
// @Tags Exams
// @Param id path string true "Exam ID"
// @Success 204
// @Router /assessment/exams/{id} [delete]
func (h *ExamHandler) Delete(c *gin.Context) {
	if err := h.exams.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

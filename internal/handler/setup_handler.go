package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dispora-dev/sportdev-api/internal/service"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
	"github.com/dispora-dev/sportdev-api/pkg/response"
)

// SetupHandler exposes per-exam test battery endpoints.
type SetupHandler struct {
	setups *service.SetupService
}

// NewSetupHandler constructs handler.
func NewSetupHandler(setups *service.SetupService) *SetupHandler {
	return &SetupHandler{setups: setups}
}

// Get godoc
// @Summary Get exam test battery
// @Tags Setup
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /assessment/exams/{id}/setup [get]
func (h *SetupHandler) Get(c *gin.Context) {
	aspects, err := h.setups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, aspects, nil)
}

// Save godoc
// @Summary Replace exam test battery
// @Tags Setup
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body service.SaveSetupRequest true "Setup payload"
// @Success 200 {object} response.Envelope
// @Router /assessment/exams/{id}/setup [put]
func (h *SetupHandler) Save(c *gin.Context) {
	var req service.SaveSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.ExamID = c.Param("id")
	aspects, err := h.setups.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, aspects, nil)
}

// ParticipantForm godoc
// @Summary Get capture form for one participant
// @Tags Setup
// @Produce json
// @Param id path string true "Exam ID"
// @Param participantId path string true "Participant ID"
// @Success 200 {object} response.Envelope
// @Router /assessment/exams/{id}/participants/{participantId}/form [get]
func (h *SetupHandler) ParticipantForm(c *gin.Context) {
	setup, err := h.setups.ForParticipant(c.Request.Context(), c.Param("id"), c.Param("participantId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setup, nil)
}

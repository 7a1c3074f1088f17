package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dispora-dev/sportdev-api/internal/service"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
	"github.com/dispora-dev/sportdev-api/pkg/response"
)

// TemplateHandler exposes per-sport test battery template endpoints.
type TemplateHandler struct {
	templates *service.TemplateService
}

// NewTemplateHandler constructs handler.
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// Get godoc
// @Summary Get sport template
// @Tags Templates
// @Produce json
// @Param sportId path string true "Sport ID"
// @Success 200 {object} response.Envelope
// @Router /assessment/templates/{sportId} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	template, err := h.templates.Get(c.Request.Context(), c.Param("sportId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, template, nil)
}

// Save godoc
// @Summary Replace sport template
// @Tags Templates
// @Accept json
// @Produce json
// @Param sportId path string true "Sport ID"
// @Param payload body service.SaveTemplateRequest true "Template payload"
// @Success 200 {object} response.Envelope
// @Router /assessment/templates/{sportId} [put]
func (h *TemplateHandler) Save(c *gin.Context) {
	var req service.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.SportID = c.Param("sportId")
	template, err := h.templates.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, template, nil)
}

// Clone godoc
// @Summary Clone sport template into an exam
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body service.CloneTemplateRequest true "Clone payload"
// @Success 201 {object} response.Envelope
// @Router /assessment/templates/clone [post]
func (h *TemplateHandler) Clone(c *gin.Context) {
	var req service.CloneTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	aspects, err := h.templates.Clone(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, aspects)
}

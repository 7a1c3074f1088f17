package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dispora-dev/sportdev-api/internal/service"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
	"github.com/dispora-dev/sportdev-api/pkg/response"
)

// ComparisonHandler exposes the cross-exam comparison endpoint.
type ComparisonHandler struct {
	comparisons *service.ComparisonService
}

// NewComparisonHandler constructs handler.
func NewComparisonHandler(comparisons *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{comparisons: comparisons}
}

// Compare godoc
// @Summary Compare athlete results across exams
// @Tags Comparison
// @Produce json
// @Param examIds query string true "Comma separated exam IDs (minimum two)"
// @Param categoryId query string false "Restrict to one participant category"
// @Success 200 {object} response.Envelope
// @Router /assessment/comparison [get]
func (h *ComparisonHandler) Compare(c *gin.Context) {
	raw := c.Query("examIds")
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "examIds query parameter required"))
		return
	}
	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	comparison, err := h.comparisons.Compare(c.Request.Context(), ids, c.Query("categoryId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comparison, nil)
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dispora-dev/sportdev-api/internal/models"
	"github.com/dispora-dev/sportdev-api/internal/service"
	"github.com/dispora-dev/sportdev-api/pkg/export"
	appErrors "github.com/dispora-dev/sportdev-api/pkg/errors"
	"github.com/dispora-dev/sportdev-api/pkg/response"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// RankingHandler exposes leaderboard and leaderboard export endpoints.
type RankingHandler struct {
	rankings *service.RankingService
	csv      csvRenderer
	pdf      pdfRenderer
}

// NewRankingHandler constructs handler.
func NewRankingHandler(rankings *service.RankingService, csv csvRenderer, pdf pdfRenderer) *RankingHandler {
	return &RankingHandler{rankings: rankings, csv: csv, pdf: pdf}
}

// Single godoc
// @Summary Rank one exam by overall percentage
// @Tags Rankings
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Router /assessment/exams/{id}/ranking [get]
func (h *RankingHandler) Single(c *gin.Context) {
	ranking, err := h.rankings.Single(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ranking, nil)
}

// Rolling godoc
// @Summary Rank a sport across exam sessions
// @Tags Rankings
// @Produce json
// @Param sportId path string true "Sport ID"
// @Param mode query string false "Ranking mode" Enums(rolling-all, rolling-lastN) default(rolling-all)
// @Param lastN query int false "Window size for rolling-lastN"
// @Success 200 {object} response.Envelope
// @Router /assessment/sports/{sportId}/ranking [get]
func (h *RankingHandler) Rolling(c *gin.Context) {
	mode := models.RankingMode(c.DefaultQuery("mode", string(models.RankingModeRollingAll)))
	lastN, _ := strconv.Atoi(c.Query("lastN"))
	ranking, err := h.rankings.Rolling(c.Request.Context(), c.Param("sportId"), mode, lastN)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ranking, nil)
}

// Export godoc
// @Summary Export one exam's ranking as CSV or PDF
// @Tags Rankings
// @Produce octet-stream
// @Param id path string true "Exam ID"
// @Param format query string false "Export format" Enums(csv, pdf) default(csv)
// @Success 200 {file} binary
// @Router /assessment/exams/{id}/ranking/export [get]
func (h *RankingHandler) Export(c *gin.Context) {
	ranking, err := h.rankings.Single(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, ranking, "exam-ranking-"+c.Param("id"))
}

// ExportRolling godoc
// @Summary Export a sport's rolling ranking as CSV or PDF
// @Tags Rankings
// @Produce octet-stream
// @Param sportId path string true "Sport ID"
// @Param mode query string false "Ranking mode" Enums(rolling-all, rolling-lastN) default(rolling-all)
// @Param lastN query int false "Window size for rolling-lastN"
// @Param format query string false "Export format" Enums(csv, pdf) default(csv)
// @Success 200 {file} binary
// @Router /assessment/sports/{sportId}/ranking/export [get]
func (h *RankingHandler) ExportRolling(c *gin.Context) {
	mode := models.RankingMode(c.DefaultQuery("mode", string(models.RankingModeRollingAll)))
	lastN, _ := strconv.Atoi(c.Query("lastN"))
	ranking, err := h.rankings.Rolling(c.Request.Context(), c.Param("sportId"), mode, lastN)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.render(c, ranking, "sport-ranking-"+c.Param("sportId"))
}

func (h *RankingHandler) render(c *gin.Context, ranking *models.Ranking, basename string) {
	dataset := h.rankings.Dataset(ranking)
	stamp := time.Now().UTC().Format("20060102-150405")
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, err := h.csv.Render(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-%s.csv\"", basename, stamp))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(dataset, "Ranking")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s-%s.pdf\"", basename, stamp))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}

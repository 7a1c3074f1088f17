package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispora-dev/sportdev-api/internal/models"
	"github.com/dispora-dev/sportdev-api/internal/service"
	"github.com/dispora-dev/sportdev-api/pkg/export"
)

type examListMock struct {
	exams []models.Exam
}

func (m *examListMock) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	for _, exam := range m.exams {
		if exam.ID == id {
			e := exam
			return &e, nil
		}
	}
	return nil, errNotFound{}
}

func (m *examListMock) ListBySport(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	return m.exams, nil
}

type errNotFound struct{}

func (errNotFound) Error() string { return "sql: no rows in result set" }

type overallRowsMock struct {
	rows []models.OverallRow
}

func (m *overallRowsMock) FetchOverallRows(ctx context.Context, examIDs []string, kind models.ParticipantKind) ([]models.OverallRow, error) {
	return m.rows, nil
}

func rankingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	exams := &examListMock{exams: []models.Exam{{ID: "e1", SportID: "sport-1", ExamDate: time.Now()}}}
	rows := &overallRowsMock{rows: []models.OverallRow{
		{Kind: models.KindAthlete, RefID: "a1", Name: "Andi", Percentage: 92.5, Band: models.BandNearTarget, ExamID: "e1"},
	}}
	svc := service.NewRankingService(exams, rows, nil, nil, nil, 3)
	h := NewRankingHandler(svc, export.NewCSVExporter(), export.NewPDFExporter())

	r := gin.New()
	r.GET("/assessment/exams/:id/ranking", h.Single)
	r.GET("/assessment/exams/:id/ranking/export", h.Export)
	r.GET("/assessment/sports/:sportId/ranking", h.Rolling)
	return r
}

func TestRankingHandlerSingle(t *testing.T) {
	r := rankingRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/assessment/exams/e1/ranking", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"rank\":1")
	assert.Contains(t, w.Body.String(), "Andi")
}

func TestRankingHandlerExportCSV(t *testing.T) {
	r := rankingRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/assessment/exams/e1/ranking/export?format=csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Rank,Name,Percentage,Band,Exams", lines[0])
	assert.Contains(t, lines[1], "92.50")
}

func TestRankingHandlerExportUnknownFormat(t *testing.T) {
	r := rankingRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/assessment/exams/e1/ranking/export?format=xlsx", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankingHandlerRollingBadMode(t *testing.T) {
	r := rankingRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/assessment/sports/sport-1/ranking?mode=bogus", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

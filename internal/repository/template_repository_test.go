package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/dispora-dev/sportdev-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTemplateRepositoryFetchBySport(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTemplateRepository(db)

	now := time.Now()
	aspectRows := sqlmock.NewRows([]string{"id", "sport_id", "name", "display_order", "created_at", "updated_at"}).
		AddRow("ta-1", "sport-1", "Physical", 1, now, now).
		AddRow("ta-2", "sport-1", "Technique", 2, now, now)
	mock.ExpectQuery("SELECT id, sport_id, name, display_order, created_at, updated_at\\s+FROM template_aspects WHERE sport_id = \\$1").
		WithArgs("sport-1").
		WillReturnRows(aspectRows)

	itemRows := sqlmock.NewRows([]string{"id", "aspect_id", "name", "unit", "target_male", "target_female", "direction", "display_order", "created_at", "updated_at"}).
		AddRow("ti-1", "ta-1", "Vertical Jump", "cm", "60", "50", models.DirectionMax, 1, now, now).
		AddRow("ti-2", "ta-1", "Sprint 100m", "s", "12", "14", models.DirectionMin, 2, now, now)
	mock.ExpectQuery("FROM template_item_tests i\\s+JOIN template_aspects a ON a.id = i.aspect_id").
		WithArgs("sport-1").
		WillReturnRows(itemRows)

	aspects, err := repo.FetchBySport(context.Background(), "sport-1")
	require.NoError(t, err)
	require.Len(t, aspects, 2)
	require.Len(t, aspects[0].ItemTests, 2)
	require.Equal(t, "Vertical Jump", aspects[0].ItemTests[0].Name)
	require.Empty(t, aspects[1].ItemTests)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepositoryFetchBySportEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTemplateRepository(db)

	mock.ExpectQuery("FROM template_aspects WHERE sport_id = \\$1").
		WithArgs("sport-9").
		WillReturnRows(sqlmock.NewRows([]string{"id", "sport_id", "name", "display_order", "created_at", "updated_at"}))

	aspects, err := repo.FetchBySport(context.Background(), "sport-9")
	require.NoError(t, err)
	require.Empty(t, aspects)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepositoryReplaceTree(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTemplateRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM template_item_tests WHERE aspect_id IN").
		WithArgs("sport-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM template_aspects WHERE sport_id = \\$1").
		WithArgs("sport-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO template_aspects").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO template_item_tests").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	target := "60"
	err := repo.ReplaceTree(context.Background(), "sport-1", []models.TemplateAspect{
		{Name: "Physical", DisplayOrder: 1, ItemTests: []models.TemplateItemTest{
			{Name: "Vertical Jump", Unit: "cm", TargetMale: &target, Direction: models.DirectionMax, DisplayOrder: 1},
		}},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepositoryReplaceTreeRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTemplateRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM template_item_tests WHERE aspect_id IN").
		WithArgs("sport-1").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	err := repo.ReplaceTree(context.Background(), "sport-1", nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

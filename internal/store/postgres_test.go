package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitescope/estimator-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_SaveAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO assessments`).
		WithArgs(pgxmock.AnyArg(), "valuation", "Mumbai", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	a := &model.Assessment{
		Kind:     model.KindValuation,
		Location: "Mumbai",
		Input:    []byte(`{}`),
		Result:   []byte(`{}`),
	}
	err := s.SaveAssessment(context.Background(), a)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAssessments_Copy(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"assessments"},
		[]string{"id", "kind", "location", "input", "result", "created_at"}).
		WillReturnResult(2)

	batch := []*model.Assessment{
		{Kind: model.KindPlan, Input: []byte(`{}`), Result: []byte(`{}`)},
		{Kind: model.KindValuation, Input: []byte(`{}`), Result: []byte(`{}`)},
	}
	err := s.SaveAssessments(context.Background(), batch)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAssessments_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	err := s.SaveAssessments(context.Background(), nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, kind, location, input, result, created_at FROM assessments WHERE id = \$1`).
		WithArgs("abc-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "location", "input", "result", "created_at"}).
			AddRow("abc-123", model.KindPlan, "Pune", []byte(`{"a":1}`), []byte(`{"b":2}`), now))

	got, err := s.GetAssessment(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got.ID)
	assert.Equal(t, model.KindPlan, got.Kind)
	assert.Equal(t, "Pune", got.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetAssessment_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, kind, location, input, result, created_at FROM assessments WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAssessment(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assessment not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListAssessments_Filters(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, kind, location, input, result, created_at FROM assessments WHERE true AND kind = \$1 AND location ILIKE \$2`).
		WithArgs("plan", "%Mumbai%", 100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "location", "input", "result", "created_at"}).
			AddRow("id-1", model.KindPlan, "Mumbai", []byte(`{}`), []byte(`{}`), now))

	got, err := s.ListAssessments(context.Background(), Filter{
		Kind:     model.KindPlan,
		Location: "Mumbai",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "id-1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS assessments`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

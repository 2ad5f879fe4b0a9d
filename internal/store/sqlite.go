package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sitescope/estimator-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS assessments (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	location   TEXT NOT NULL DEFAULT '',
	input      TEXT NOT NULL,
	result     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_assessments_kind ON assessments(kind);
CREATE INDEX IF NOT EXISTS idx_assessments_location ON assessments(location);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *model.Assessment) error {
	fillDefaults(a)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, kind, location, input, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Kind), a.Location, string(a.Input), string(a.Result), a.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert assessment")
}

func (s *SQLiteStore) SaveAssessments(ctx context.Context, as []*model.Assessment) error {
	if len(as) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin batch")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assessments (id, kind, location, input, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare batch insert")
	}
	defer stmt.Close()

	for _, a := range as {
		fillDefaults(a)
		if _, err := stmt.ExecContext(ctx, a.ID, string(a.Kind), a.Location, string(a.Input), string(a.Result), a.CreatedAt); err != nil {
			return eris.Wrapf(err, "sqlite: insert assessment %s", a.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit batch")
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, location, input, result, created_at FROM assessments WHERE id = ?`,
		id,
	)

	var a model.Assessment
	var input, result string
	err := row.Scan(&a.ID, &a.Kind, &a.Location, &input, &result, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("assessment not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan assessment")
	}
	a.Input = []byte(input)
	a.Result = []byte(result)
	return &a, nil
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter Filter) ([]model.Assessment, error) {
	query := `SELECT id, kind, location, input, result, created_at FROM assessments WHERE 1=1`
	var args []any

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	if filter.Location != "" {
		query += ` AND location LIKE ?`
		args = append(args, "%"+filter.Location+"%")
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		var a model.Assessment
		var input, result string
		if err := rows.Scan(&a.ID, &a.Kind, &a.Location, &input, &result, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan assessment")
		}
		a.Input = []byte(input)
		a.Result = []byte(result)
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

func fillDefaults(a *model.Assessment) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
}

package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		e    models.Entry
		mood sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Content, &mood, &e.CreatedAt); err != nil {
		return nil, err
	}
	if mood.Valid {
		e.Mood = &mood.String
	}
	e.CreatedAt = e.CreatedAt.UTC()
	return &e, nil
}

func nullMood(mood *string) sql.NullString {
	if mood == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *mood, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	query :=
		`INSERT INTO journal_entries (content, mood, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, content, mood, created_at
		 `

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, entry.Content, nullMood(entry.Mood), entry.CreatedAt.UTC()))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Entry, error) {

	query :=
		`SELECT id, content, mood, created_at FROM journal_entries
		 WHERE id = $1
		 `

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*models.Entry, error) {

	query :=
		`SELECT id, content, mood, created_at FROM journal_entries
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2
		 `

	return r.selectEntries(ctx, query, limit, offset)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) SelectBetween(ctx context.Context, from, to time.Time) ([]*models.Entry, error) {

	query :=
		`SELECT id, content, mood, created_at FROM journal_entries
		 WHERE created_at BETWEEN $1 AND $2
		 ORDER BY created_at ASC, id ASC
		 `

	return r.selectEntries(ctx, query, from.UTC(), to.UTC())
}

func (r *PostgresRepository) selectEntries(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, content string, mood *string, createdAt *time.Time) (*models.Entry, error) {

	query :=
		`UPDATE journal_entries
		 SET content = $2, mood = $3, created_at = COALESCE($4::timestamptz, created_at)
		 WHERE id = $1
		 RETURNING id, content, mood, created_at
		 `

	var ts sql.NullTime
	if createdAt != nil {
		ts = sql.NullTime{Time: createdAt.UTC(), Valid: true}
	}

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id, content, nullMood(mood), ts))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Get(ctx context.Context, key string) (*UISetting, error) {
	var s UISetting
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT key, value, updated_by, updated_at FROM ui_setting WHERE key = $1`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repoPG) List(ctx context.Context) ([]*UISetting, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT key, value, updated_by, updated_at FROM ui_setting ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []*UISetting
	for rows.Next() {
		var s UISetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, &s)
	}
	return settings, nil
}

func (r *repoPG) Upsert(ctx context.Context, s *UISetting) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO ui_setting (key, value, updated_by)
		VALUES ($1,$2,$3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = NOW()
		RETURNING updated_at`,
		s.Key, s.Value, s.UpdatedBy,
	).Scan(&s.UpdatedAt)
}

func (r *repoPG) Delete(ctx context.Context, key string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM ui_setting WHERE key = $1`, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package staff

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/domain/workflow"
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

const staffCols = `id, name, role, specialty, phone, on_duty, active, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, m *Member) error {
	m.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO staff (id, name, role, specialty, phone, on_duty, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		m.ID, m.Name, m.Role, m.Specialty, m.Phone, m.OnDuty, m.Active,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	return scanMember(r.conn(ctx).QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, m *Member) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE staff SET name=$2, specialty=$3, phone=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Specialty, m.Phone, m.Active,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Member, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+staffCols+` FROM staff ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectMembers(rows, total)
}

func (r *repoPG) SetOnDuty(ctx context.Context, id uuid.UUID, onDuty bool) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE staff SET on_duty=$2, updated_at=NOW() WHERE id = $1`, id, onDuty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) SetRole(ctx context.Context, id uuid.UUID, role workflow.Role) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE staff SET role=$2, updated_at=NOW() WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) DoctorsOnDuty(ctx context.Context) ([]*Member, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+staffCols+` FROM staff WHERE role = $1 AND on_duty AND active ORDER BY name`,
		workflow.RoleDoctor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members, _, err := collectMembers(rows, 0)
	return members, err
}

func (r *repoPG) CountDoctorsOnDuty(ctx context.Context) (int, error) {
	var total int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM staff WHERE role = $1 AND on_duty AND active`,
		workflow.RoleDoctor).Scan(&total)
	return total, err
}

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(
		&m.ID, &m.Name, &m.Role, &m.Specialty, &m.Phone, &m.OnDuty, &m.Active,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectMembers(rows pgx.Rows, total int) ([]*Member, int, error) {
	var members []*Member
	for rows.Next() {
		var m Member
		err := rows.Scan(
			&m.ID, &m.Name, &m.Role, &m.Specialty, &m.Phone, &m.OnDuty, &m.Active,
			&m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, &m)
	}
	return members, total, nil
}

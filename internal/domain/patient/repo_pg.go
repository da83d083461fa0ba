package patient

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
	pool      *pgxpool.Pool
	mrnPrefix string
}

func NewRepo(pool *pgxpool.Pool, mrnPrefix string) Repository {
	return &repoPG{pool: pool, mrnPrefix: mrnPrefix}
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

const patientCols = `id, mrn, token, name, age, gender, phone, address,
	emergency_contact, status, active, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	// MRN and token come from sequences owned by the database so that
	// concurrent registrations can never collide.
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (
			id, mrn, token, name, age, gender, phone, address,
			emergency_contact, status, active
		) VALUES (
			$1,
			$2 || lpad(nextval('mrn_seq')::text, 6, '0'),
			nextval('queue_token_seq'),
			$3,$4,$5,$6,$7,$8,$9,$10
		)
		RETURNING mrn, token, created_at, updated_at`,
		p.ID, r.mrnPrefix, p.Name, p.Age, p.Gender, p.Phone, p.Address,
		p.EmergencyContact, p.Status, p.Active,
	).Scan(&p.MRN, &p.Token, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return scanPatient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE mrn = $1`, mrn))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET
			name=$2, age=$3, gender=$4, phone=$5, address=$6,
			emergency_contact=$7, active=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Address,
		p.EmergencyContact, p.Active,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, from, to workflow.Status) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET status=$3, updated_at=NOW()
		WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient ORDER BY token LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func (r *repoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + query + "%"
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM patient
		WHERE mrn ILIKE $1 OR name ILIKE $1 OR phone ILIKE $1`,
		pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE mrn ILIKE $1 OR name ILIKE $1 OR phone ILIKE $1
		ORDER BY token LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func (r *repoPG) ListActive(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patient WHERE active ORDER BY token`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	patients, _, err := collectPatients(rows, 0)
	return patients, err
}

func (r *repoPG) AddStatusChange(ctx context.Context, sc *StatusChange) error {
	sc.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_status_history (id, patient_id, from_status, to_status, changed_by)
		VALUES ($1,$2,$3,$4,$5)`,
		sc.ID, sc.PatientID, sc.FromStatus, sc.ToStatus, sc.ChangedBy,
	)
	return err
}

func (r *repoPG) StatusHistory(ctx context.Context, patientID uuid.UUID) ([]*StatusChange, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, from_status, to_status, changed_by, changed_at
		FROM patient_status_history WHERE patient_id = $1 ORDER BY changed_at`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*StatusChange
	for rows.Next() {
		var sc StatusChange
		if err := rows.Scan(&sc.ID, &sc.PatientID, &sc.FromStatus, &sc.ToStatus, &sc.ChangedBy, &sc.ChangedAt); err != nil {
			return nil, err
		}
		history = append(history, &sc)
	}
	return history, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.MRN, &p.Token, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Address,
		&p.EmergencyContact, &p.Status, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows, total int) ([]*Patient, int, error) {
	var patients []*Patient
	for rows.Next() {
		var p Patient
		err := rows.Scan(
			&p.ID, &p.MRN, &p.Token, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Address,
			&p.EmergencyContact, &p.Status, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, &p)
	}
	return patients, total, nil
}

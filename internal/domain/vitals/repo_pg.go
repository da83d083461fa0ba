package vitals

import (
	"context"
	"errors"

	"github.com/google/uuid"
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

const vitalsCols = `id, patient_id, systolic_bp, diastolic_bp, pulse, temperature_c,
	weight_kg, height_cm, spo2, notes, recorded_by, recorded_at`

func (r *repoPG) Create(ctx context.Context, v *Vitals) error {
	v.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO vitals (
			id, patient_id, systolic_bp, diastolic_bp, pulse, temperature_c,
			weight_kg, height_cm, spo2, notes, recorded_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING recorded_at`,
		v.ID, v.PatientID, v.SystolicBP, v.DiastolicBP, v.Pulse, v.TemperatureC,
		v.WeightKg, v.HeightCm, v.SpO2, v.Notes, v.RecordedBy,
	).Scan(&v.RecordedAt)
}

func (r *repoPG) Latest(ctx context.Context, patientID uuid.UUID) (*Vitals, error) {
	return scanVitals(r.conn(ctx).QueryRow(ctx,
		`SELECT `+vitalsCols+` FROM vitals WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		patientID))
}

func (r *repoPG) History(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Vitals, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM vitals WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+vitalsCols+` FROM vitals WHERE patient_id = $1 ORDER BY recorded_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var history []*Vitals
	for rows.Next() {
		var v Vitals
		err := rows.Scan(
			&v.ID, &v.PatientID, &v.SystolicBP, &v.DiastolicBP, &v.Pulse, &v.TemperatureC,
			&v.WeightKg, &v.HeightCm, &v.SpO2, &v.Notes, &v.RecordedBy, &v.RecordedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		history = append(history, &v)
	}
	return history, total, nil
}

func scanVitals(row pgx.Row) (*Vitals, error) {
	var v Vitals
	err := row.Scan(
		&v.ID, &v.PatientID, &v.SystolicBP, &v.DiastolicBP, &v.Pulse, &v.TemperatureC,
		&v.WeightKg, &v.HeightCm, &v.SpO2, &v.Notes, &v.RecordedBy, &v.RecordedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

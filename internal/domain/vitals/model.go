package vitals

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("vitals not found")

// Vitals is one set of measurements taken at the front desk or triage.
type Vitals struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	SystolicBP   int       `json:"systolic_bp"`
	DiastolicBP  int       `json:"diastolic_bp"`
	Pulse        int       `json:"pulse"`
	TemperatureC float64   `json:"temperature_c"`
	WeightKg     float64   `json:"weight_kg"`
	HeightCm     float64   `json:"height_cm"`
	SpO2         int       `json:"spo2"`
	Notes        string    `json:"notes,omitempty"`
	RecordedBy   string    `json:"recorded_by"`
	RecordedAt   time.Time `json:"recorded_at"`
}

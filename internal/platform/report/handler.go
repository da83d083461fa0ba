package report

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/settings"
	"github.com/clinicdesk/clinicdesk/internal/domain/vitals"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

const defaultConsultationFee = 500.0

// PatientReader is the slice of patient.Service the reports need.
type PatientReader interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	StatusHistory(ctx context.Context, id uuid.UUID) ([]*patient.StatusChange, error)
}

// VitalsReader is the slice of vitals.Service the reports need.
type VitalsReader interface {
	Latest(ctx context.Context, patientID uuid.UUID) (*vitals.Vitals, error)
}

// AppointmentReader is the slice of appointment.Service the invoice needs.
type AppointmentReader interface {
	Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

// SettingsReader looks up the configurable consultation fee.
type SettingsReader interface {
	Get(ctx context.Context, key string) (*settings.UISetting, error)
}

type Handler struct {
	clinicName   string
	patients     PatientReader
	vitals       VitalsReader
	appointments AppointmentReader
	settings     SettingsReader
}

func NewHandler(clinicName string, patients PatientReader, vitalsSvc VitalsReader, appointments AppointmentReader, settingsSvc SettingsReader) *Handler {
	return &Handler{
		clinicName:   clinicName,
		patients:     patients,
		vitals:       vitalsSvc,
		appointments: appointments,
		settings:     settingsSvc,
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("doctor", "staff"))
	g.GET("/patients/:id/report", h.VisitReport)
	g.GET("/appointments/:id/invoice", h.AppointmentInvoice)
}

func (h *Handler) VisitReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()

	p, err := h.patients.Get(ctx, id)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	history, err := h.patients.StatusHistory(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	latest, err := h.vitals.Latest(ctx, id)
	if err != nil && !errors.Is(err, vitals.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	body := Visit(h.clinicName, p, history, latest)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="visit-report-`+p.MRN+`.txt"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *Handler) AppointmentInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()

	a, err := h.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, appointment.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	p, err := h.patients.Get(ctx, a.PatientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	lines := []InvoiceLine{{Description: "Consultation", Amount: h.consultationFee(ctx)}}
	body := Invoice(h.clinicName, a, p, lines)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="invoice-`+a.ID.String()+`.txt"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// consultationFee reads the configurable fee, falling back to the default
// when unset or malformed.
func (h *Handler) consultationFee(ctx context.Context) float64 {
	s, err := h.settings.Get(ctx, "consultation_fee")
	if err != nil {
		return defaultConsultationFee
	}
	fee, err := strconv.ParseFloat(s.Value, 64)
	if err != nil || fee < 0 {
		return defaultConsultationFee
	}
	return fee
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
)

func auditTestContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAudit_RecordsAPIRequest(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	var captured *AuditEntry
	recorder := AuditRecorderFunc(func(entry AuditEntry) error {
		captured = &entry
		return nil
	})

	pid := uuid.New().String()
	c, _ := auditTestContext(http.MethodPatch, "/api/patients/"+pid+"/status")

	ctx := c.Request().Context()
	ctx = context.WithValue(ctx, auth.UserIDKey, "u-42")
	ctx = context.WithValue(ctx, auth.UserRoleKey, "doctor")
	c.SetRequest(c.Request().WithContext(ctx))

	handler := Audit(logger, recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if captured == nil {
		t.Fatal("expected audit entry to be recorded")
	}
	if captured.UserID != "u-42" || captured.UserRole != "doctor" {
		t.Errorf("unexpected actor: %s/%s", captured.UserID, captured.UserRole)
	}
	if captured.Action != "update" {
		t.Errorf("expected action update, got %s", captured.Action)
	}
	if captured.Resource != "patients" {
		t.Errorf("expected resource patients, got %s", captured.Resource)
	}
	if captured.PatientID != pid {
		t.Errorf("expected patient id %s, got %s", pid, captured.PatientID)
	}
}

func TestAudit_SkipsNonAPIPaths(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	recorded := false
	recorder := AuditRecorderFunc(func(entry AuditEntry) error {
		recorded = true
		return nil
	})

	c, _ := auditTestContext(http.MethodGet, "/health")
	handler := Audit(logger, recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if recorded {
		t.Error("health check should not be audited")
	}
}

func TestAudit_NoPatientInPath(t *testing.T) {
	logger := zerolog.New(os.Stderr)
	var captured *AuditEntry
	recorder := AuditRecorderFunc(func(entry AuditEntry) error {
		captured = &entry
		return nil
	})

	c, _ := auditTestContext(http.MethodGet, "/api/queue")
	handler := Audit(logger, recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if captured == nil {
		t.Fatal("expected audit entry")
	}
	if captured.Resource != "queue" {
		t.Errorf("expected resource queue, got %s", captured.Resource)
	}
	if captured.PatientID != "" {
		t.Errorf("expected empty patient id, got %s", captured.PatientID)
	}
}

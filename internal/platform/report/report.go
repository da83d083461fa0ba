package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/vitals"
)

// The visit report and invoice are plain-text artifacts rendered on demand;
// nothing is persisted.

const lineWidth = 60

func header(clinicName, title string) string {
	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)
	b.WriteString(rule + "\n")
	b.WriteString(center(clinicName) + "\n")
	b.WriteString(center(title) + "\n")
	b.WriteString(rule + "\n\n")
	return b.String()
}

func center(s string) string {
	if len(s) >= lineWidth {
		return s
	}
	pad := (lineWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func field(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-20s %s\n", label+":", value)
}

// Visit renders a patient's visit report: identity, current flow status,
// the status trail, and the most recent vitals if any were taken.
func Visit(clinicName string, p *patient.Patient, history []*patient.StatusChange, latest *vitals.Vitals) string {
	var b strings.Builder
	b.WriteString(header(clinicName, "VISIT REPORT"))

	field(&b, "MRN", p.MRN)
	field(&b, "Token", fmt.Sprintf("%d", p.Token))
	field(&b, "Name", p.Name)
	field(&b, "Age", fmt.Sprintf("%d", p.Age))
	if p.Gender != "" {
		field(&b, "Gender", p.Gender)
	}
	if p.Phone != "" {
		field(&b, "Phone", p.Phone)
	}
	field(&b, "Current Status", string(p.Status))
	b.WriteString("\n")

	if latest != nil {
		b.WriteString("Vitals\n")
		b.WriteString(strings.Repeat("-", lineWidth) + "\n")
		field(&b, "Blood Pressure", fmt.Sprintf("%d/%d mmHg", latest.SystolicBP, latest.DiastolicBP))
		field(&b, "Pulse", fmt.Sprintf("%d bpm", latest.Pulse))
		field(&b, "Temperature", fmt.Sprintf("%.1f C", latest.TemperatureC))
		if latest.SpO2 > 0 {
			field(&b, "SpO2", fmt.Sprintf("%d%%", latest.SpO2))
		}
		if latest.WeightKg > 0 {
			field(&b, "Weight", fmt.Sprintf("%.1f kg", latest.WeightKg))
		}
		b.WriteString("\n")
	}

	if len(history) > 0 {
		b.WriteString("Status Trail\n")
		b.WriteString(strings.Repeat("-", lineWidth) + "\n")
		for _, sc := range history {
			fmt.Fprintf(&b, "%s  %s -> %s\n",
				sc.ChangedAt.Format("2006-01-02 15:04"), sc.FromStatus, sc.ToStatus)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Generated %s\n", time.Now().UTC().Format("2006-01-02 15:04 MST"))
	return b.String()
}

// InvoiceLine is one billable item on an invoice.
type InvoiceLine struct {
	Description string
	Amount      float64
}

// Invoice renders a billing slip for a booked appointment.
func Invoice(clinicName string, a *appointment.Appointment, p *patient.Patient, lines []InvoiceLine) string {
	var b strings.Builder
	b.WriteString(header(clinicName, "INVOICE"))

	field(&b, "Invoice No", a.ID.String())
	field(&b, "Date", a.Date.Format("2006-01-02"))
	field(&b, "Patient", p.Name)
	field(&b, "MRN", p.MRN)
	if a.TimeSlot != "" {
		field(&b, "Time", a.TimeSlot)
	}
	if a.Type != "" {
		field(&b, "Visit Type", a.Type)
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat("-", lineWidth) + "\n")
	var total float64
	for _, l := range lines {
		fmt.Fprintf(&b, "%-44s %12.2f\n", l.Description, l.Amount)
		total += l.Amount
	}
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")
	fmt.Fprintf(&b, "%-44s %12.2f\n", "TOTAL", total)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Generated %s\n", time.Now().UTC().Format("2006-01-02 15:04 MST"))
	return b.String()
}

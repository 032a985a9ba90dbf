package appointment

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

// DateLayout is the wire and storage format of Appointment.Date.
const DateLayout = "2006-01-02"

var (
	ErrAppointmentNotFound = httperr.ErrNotFound("appointment_not_found", "Appointment not found")

	// ErrOwnerNotFound means the authenticated user vanished between token
	// issue and the request. It is not a client error.
	ErrOwnerNotFound = errors.New("appointment owner not found")

	// ErrScopeChanged means the appointment moved to another date between
	// the read that chose the scope and the locked write.
	ErrScopeChanged = errors.New("appointment moved to another scope")
)

// Fields are the mutable, non-identity attributes of an appointment.
type Fields struct {
	Name    string
	Email   string
	Service string
	Date    string
	Time    *string
}

// ValidDate reports whether d is a calendar date in DateLayout.
func ValidDate(d string) bool {
	_, err := time.Parse(DateLayout, d)
	return err == nil
}

// ===============================
// Domain Actions
// ===============================

// New builds a confirmed appointment without a queue number; the number is
// assigned by the first renumbering pass over its date.
func New(id, userID string, f Fields, now time.Time) *models.Appointment {
	return &models.Appointment{
		ID:        id,
		UserID:    userID,
		Name:      f.Name,
		Email:     f.Email,
		Service:   f.Service,
		Date:      f.Date,
		Time:      f.Time,
		Status:    string(InitialStatus()),
		CreatedAt: now,
	}
}

// Apply copies f onto ap and stamps the modification time. Queue numbers are
// left untouched.
func Apply(ap *models.Appointment, f Fields, now time.Time) {
	ap.Name = f.Name
	ap.Email = f.Email
	ap.Service = f.Service
	ap.Date = f.Date
	ap.Time = f.Time
	ap.UpdatedAt = &now
}

package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type Repository interface {
	// -------- Owner --------
	UserExists(
		ctx context.Context,
		userID string,
	) (bool, error)

	// -------- Appointment (lifecycle) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	GetAppointmentForUser(
		ctx context.Context,
		id string,
		userID string,
	) (*models.Appointment, error)

	UpdateAppointmentForUser(
		ctx context.Context,
		id string,
		userID string,
		fields Fields,
		now time.Time,
	) (*models.Appointment, error)

	// DeleteAppointmentForUser removes the appointment and returns the date
	// it occupied so the caller can renumber the vacated scope.
	DeleteAppointmentForUser(
		ctx context.Context,
		id string,
		userID string,
	) (string, error)

	// -------- Appointment (reads) --------
	ListAppointmentsForUser(
		ctx context.Context,
		userID string,
	) ([]models.Appointment, error)

	// LatestConfirmedForUser returns nil, nil when the user has none.
	LatestConfirmedForUser(
		ctx context.Context,
		userID string,
	) (*models.Appointment, error)

	ListAllAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListGlobalQueue(
		ctx context.Context,
	) ([]models.Appointment, error)

	// -------- Queue --------

	// InScope runs fn atomically while holding every scope in scopes:
	// either every write fn makes is applied or none is.
	InScope(
		ctx context.Context,
		scopes []Scope,
		fn func(tx ScopeTx) error,
	) error
}

// ScopeTx is the view of the store available inside InScope. Lifecycle
// writes made through it commit together with the renumbering that follows.
type ScopeTx interface {
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointmentForUser locks the row until the transaction ends.
	GetAppointmentForUser(
		ctx context.Context,
		id string,
		userID string,
	) (*models.Appointment, error)

	UpdateAppointmentForUser(
		ctx context.Context,
		id string,
		userID string,
		fields Fields,
		now time.Time,
	) (*models.Appointment, error)

	DeleteAppointmentForUser(
		ctx context.Context,
		id string,
		userID string,
	) (string, error)

	// ListByScope returns the confirmed appointments of scope in
	// numbering order.
	ListByScope(
		ctx context.Context,
		scope Scope,
	) ([]models.Appointment, error)

	// SetQueueNumber writes n into the number field scope owns.
	SetQueueNumber(
		ctx context.Context,
		scope Scope,
		id string,
		n int,
	) error
}

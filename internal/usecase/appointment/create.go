package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
	"github.com/BruksfildServices01/registrar-queue/internal/usecase/queue"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID string
	domain.Fields
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	engine *queue.Engine
	audit  *audit.Dispatcher
	opts   options
}

func NewCreateAppointment(
	repo domain.Repository,
	engine *queue.Engine,
	audit *audit.Dispatcher,
	opts ...Option,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		engine: engine,
		audit:  audit,
		opts:   buildOptions(opts),
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute stores a confirmed appointment, renumbers its date and returns the
// record with the queue number it was given.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if !domain.ValidDate(in.Date) {
		return nil, httperr.NewBusiness("invalid_date", "Date must be in YYYY-MM-DD format")
	}

	// --------------------------------------------------
	// Owner
	// --------------------------------------------------
	ok, err := uc.repo.UserExists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrOwnerNotFound, in.UserID)
	}

	// --------------------------------------------------
	// Store + Queue
	// --------------------------------------------------
	ap := domain.New(uuid.NewString(), in.UserID, in.Fields, uc.opts.now())
	err = uc.engine.Apply(ctx,
		[]domain.Scope{domain.DateScope(ap.Date)},
		func(tx domain.ScopeTx) error {
			return tx.CreateAppointment(ctx, ap)
		},
	)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	uc.opts.metrics.IncLifecycle("created")
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: created.ID,
		Metadata: map[string]any{
			"date":        created.Date,
			"queueNumber": created.QueueNumber,
		},
	})

	return created, nil
}

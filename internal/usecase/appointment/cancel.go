package appointment

import (
	"context"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/usecase/queue"
)

// CancelAppointment deletes the caller's appointment and closes the gap it
// leaves in its date's queue.
type CancelAppointment struct {
	repo   domain.Repository
	engine *queue.Engine
	audit  *audit.Dispatcher
	opts   options
}

func NewCancelAppointment(
	repo domain.Repository,
	engine *queue.Engine,
	audit *audit.Dispatcher,
	opts ...Option,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		engine: engine,
		audit:  audit,
		opts:   buildOptions(opts),
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	userID string,
	appointmentID string,
) error {

	var date string
	err := retryScope(func() error {
		cur, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
		if err != nil {
			return err
		}
		date = cur.Date

		return uc.engine.Apply(ctx,
			[]domain.Scope{domain.DateScope(date)},
			func(tx domain.ScopeTx) error {
				deleted, err := tx.DeleteAppointmentForUser(ctx, appointmentID, userID)
				if err != nil {
					return err
				}
				if deleted != date {
					return domain.ErrScopeChanged
				}
				return nil
			},
		)
	})
	if err != nil {
		return err
	}

	uc.opts.metrics.IncLifecycle("cancelled")
	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: appointmentID,
		Metadata: map[string]any{"date": date},
	})

	return nil
}

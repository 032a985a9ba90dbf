package appointment

import (
	"context"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
	"github.com/BruksfildServices01/registrar-queue/internal/usecase/queue"
)

type UpdateAppointmentInput struct {
	ID     string
	UserID string
	domain.Fields
}

// UpdateAppointment rewrites the caller's appointment in place. Queue numbers
// are left as they are unless renumberOnDateChange is set, in which case a
// date change renumbers both the vacated and the new date.
type UpdateAppointment struct {
	repo                 domain.Repository
	engine               *queue.Engine
	audit                *audit.Dispatcher
	renumberOnDateChange bool
	opts                 options
}

func NewUpdateAppointment(
	repo domain.Repository,
	engine *queue.Engine,
	audit *audit.Dispatcher,
	renumberOnDateChange bool,
	opts ...Option,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:                 repo,
		engine:               engine,
		audit:                audit,
		renumberOnDateChange: renumberOnDateChange,
		opts:                 buildOptions(opts),
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if !domain.ValidDate(in.Date) {
		return nil, httperr.NewBusiness("invalid_date", "Date must be in YYYY-MM-DD format")
	}

	before, err := uc.repo.GetAppointmentForUser(ctx, in.ID, in.UserID)
	if err != nil {
		return nil, err
	}

	var updated *models.Appointment
	if uc.renumberOnDateChange && before.Date != in.Date {
		updated, err = uc.moveAndRenumber(ctx, in, before)
	} else {
		updated, err = uc.repo.UpdateAppointmentForUser(
			ctx,
			in.ID,
			in.UserID,
			in.Fields,
			uc.opts.now(),
		)
	}
	if err != nil {
		return nil, err
	}

	uc.opts.metrics.IncLifecycle("updated")
	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: updated.ID,
		Metadata: map[string]any{
			"fromDate": before.Date,
			"toDate":   updated.Date,
		},
	})

	return updated, nil
}

// moveAndRenumber writes the new date and renumbers the vacated and the new
// date in the same transaction. before is re-read whenever the appointment
// moved between the unlocked read and the locked write.
func (uc *UpdateAppointment) moveAndRenumber(
	ctx context.Context,
	in UpdateAppointmentInput,
	before *models.Appointment,
) (*models.Appointment, error) {

	var updated *models.Appointment
	err := retryScope(func() error {
		from := before.Date
		scopes := []domain.Scope{domain.DateScope(from), domain.DateScope(in.Date)}

		err := uc.engine.Apply(ctx, scopes, func(tx domain.ScopeTx) error {
			cur, err := tx.GetAppointmentForUser(ctx, in.ID, in.UserID)
			if err != nil {
				return err
			}
			if cur.Date != from {
				before = cur
				return domain.ErrScopeChanged
			}
			_, err = tx.UpdateAppointmentForUser(ctx, in.ID, in.UserID, in.Fields, uc.opts.now())
			return err
		})
		if err != nil {
			return err
		}

		updated, err = uc.repo.GetAppointment(ctx, in.ID)
		return err
	})
	return updated, err
}

package queue

import (
	"context"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

// CurrentPosition is the caller's place in line. Both fields are nil when
// the user holds no confirmed appointment.
type CurrentPosition struct {
	QueueNumber *int
	Appointment *models.Appointment
}

type GetCurrentQueue struct {
	repo domain.Repository
}

func NewGetCurrentQueue(repo domain.Repository) *GetCurrentQueue {
	return &GetCurrentQueue{repo: repo}
}

// Execute reports the most recently created confirmed appointment of userID
// and its per-date queue number.
func (uc *GetCurrentQueue) Execute(ctx context.Context, userID string) (*CurrentPosition, error) {
	ap, err := uc.repo.LatestConfirmedForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return &CurrentPosition{}, nil
	}

	return &CurrentPosition{
		QueueNumber: ap.QueueNumber,
		Appointment: ap,
	}, nil
}

package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

// Execute returns the appointment only when userID owns it.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	userID string,
	appointmentID string,
) (*models.Appointment, error) {
	return uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
}

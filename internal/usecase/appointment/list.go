package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

// ListMyAppointments returns the caller's appointments, newest first.
type ListMyAppointments struct {
	repo domain.Repository
}

func NewListMyAppointments(repo domain.Repository) *ListMyAppointments {
	return &ListMyAppointments{repo: repo}
}

func (uc *ListMyAppointments) Execute(ctx context.Context, userID string) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForUser(ctx, userID)
}

// ListAllAppointments is the administrator listing, ordered by date then
// creation time.
type ListAllAppointments struct {
	repo domain.Repository
}

func NewListAllAppointments(repo domain.Repository) *ListAllAppointments {
	return &ListAllAppointments{repo: repo}
}

func (uc *ListAllAppointments) Execute(ctx context.Context) ([]models.Appointment, error) {
	return uc.repo.ListAllAppointments(ctx)
}

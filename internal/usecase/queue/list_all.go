package queue

import (
	"context"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

// GetGlobalQueue is the administrator's view of every confirmed appointment
// in global queue order.
type GetGlobalQueue struct {
	repo   domain.Repository
	engine *Engine
}

func NewGetGlobalQueue(repo domain.Repository, engine *Engine) *GetGlobalQueue {
	return &GetGlobalQueue{repo: repo, engine: engine}
}

// Execute brings global numbers up to date before listing so the returned
// order is always 1..N.
func (uc *GetGlobalQueue) Execute(ctx context.Context) ([]models.Appointment, error) {
	if err := uc.engine.RenumberGlobal(ctx); err != nil {
		return nil, err
	}
	return uc.repo.ListGlobalQueue(ctx)
}

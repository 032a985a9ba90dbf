package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/registrar-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

// --------------------------------------------------
// Services
// --------------------------------------------------

func (s *Store) ListServices(context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, cloneService(svc))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetService(_ context.Context, id string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	out := cloneService(svc)
	return &out, nil
}

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	if _, ok := s.services[svc.ID]; ok {
		return catalog.ErrServiceExists
	}
	s.services[svc.ID] = cloneService(*svc)
	return nil
}

func (s *Store) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; !ok {
		return catalog.ErrServiceNotFound
	}
	s.services[svc.ID] = cloneService(*svc)
	return nil
}

// DeleteService is a no-op for unknown ids.
func (s *Store) DeleteService(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.services, id)
	return nil
}

func (s *Store) CountServices(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.services)), nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (s *Store) ListAvailability(context.Context) ([]models.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Availability, 0, len(s.availability))
	for _, a := range s.availability {
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *Store) UpsertAvailability(_ context.Context, a *models.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.availability {
		if existing.Date == a.Date && existing.Time == a.Time {
			existing.Slots = a.Slots
			s.availability[id] = existing
			*a = existing
			return nil
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.availability[a.ID] = *a
	return nil
}

// DeleteAvailability is a no-op for unknown ids.
func (s *Store) DeleteAvailability(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.availability, id)
	return nil
}

func cloneService(svc models.Service) models.Service {
	svc.Requirements = append([]string(nil), svc.Requirements...)
	return svc
}

var _ catalog.Repository = (*Store)(nil)

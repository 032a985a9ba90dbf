package memory

import (
	"context"

	"github.com/BruksfildServices01/registrar-queue/internal/domain/user"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if normalizeEmail(existing.Email) == normalizeEmail(u.Email) {
			return user.ErrEmailTaken
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if normalizeEmail(u.Email) == normalizeEmail(email) {
			u := u
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (s *Store) UpsertAdmin(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.users {
		if normalizeEmail(existing.Email) == normalizeEmail(u.Email) {
			existing.Role = models.RoleAdmin
			existing.PasswordHash = u.PasswordHash
			s.users[id] = existing
			*u = existing
			return nil
		}
	}
	u.Role = models.RoleAdmin
	s.users[u.ID] = *u
	return nil
}

// DeleteUser removes the user and cascades to their appointments.
func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(s.users, id)
	for apID, ap := range s.appointments {
		if ap.UserID == id {
			delete(s.appointments, apID)
		}
	}
	return nil
}

var _ user.Repository = (*Store)(nil)

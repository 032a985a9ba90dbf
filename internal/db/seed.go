package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/auth"
	"github.com/BruksfildServices01/registrar-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/registrar-queue/internal/domain/user"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// Seed makes sure the administrator account exists and fills an empty
// service catalog with the default registrar services. It works against any
// store.
func Seed(
	ctx context.Context,
	users user.Repository,
	services catalog.Repository,
	admin AdminAccount,
	log zerolog.Logger,
) error {

	if admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin bootstrap")
	} else {
		hash, err := auth.HashPassword(admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		u := &models.User{
			ID:           uuid.NewString(),
			Name:         admin.Name,
			Email:        admin.Email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		if err := users.UpsertAdmin(ctx, u); err != nil {
			return fmt.Errorf("upsert admin: %w", err)
		}
		log.Info().Str("email", u.Email).Msg("admin account ready")
	}

	n, err := services.CountServices(ctx)
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, s := range catalog.DefaultServices() {
		s := s
		if err := services.CreateService(ctx, &s); err != nil {
			return fmt.Errorf("seed service %s: %w", s.ID, err)
		}
	}
	log.Info().Int("count", len(catalog.DefaultServices())).Msg("default services seeded")

	return nil
}

package user

import (
	"context"

	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

var (
	ErrUserNotFound = httperr.ErrNotFound("user_not_found", "User not found")
	ErrEmailTaken   = httperr.NewBusiness("user_already_exists", "User already exists")
)

type Repository interface {
	// CreateUser fails with ErrEmailTaken when the email is registered.
	CreateUser(ctx context.Context, u *models.User) error

	GetUser(ctx context.Context, id string) (*models.User, error)

	FindUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpsertAdmin creates the account or resets its role and password.
	UpsertAdmin(ctx context.Context, u *models.User) error
}

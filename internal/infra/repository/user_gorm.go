package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/registrar-queue/internal/domain/user"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	err := r.db.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return mapError(err)
}

func (r *UserGormRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, userNotFoundOr(err)
	}
	return &u, nil
}

func (r *UserGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error; err != nil {
		return nil, userNotFoundOr(err)
	}
	return &u, nil
}

// UpsertAdmin keys on email; an existing account keeps its id and name.
func (r *UserGormRepository) UpsertAdmin(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Role = models.RoleAdmin

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "role"}),
		}).
		Create(u).Error
	if err != nil {
		return mapError(err)
	}

	// on conflict the returned id is the caller's, not the stored one
	stored, err := r.FindUserByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	*u = *stored
	return nil
}

func userNotFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.ErrUserNotFound
	}
	return mapError(err)
}

var _ user.Repository = (*UserGormRepository)(nil)

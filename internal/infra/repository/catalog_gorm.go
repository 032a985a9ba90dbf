package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/registrar-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrServiceNotFound
		}
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Create(s).Error
	if isUniqueViolation(err) {
		return catalog.ErrServiceExists
	}
	return mapError(err)
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{ID: s.ID}).
		Select("name", "requirements").
		Updates(s)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *CatalogGormRepository) DeleteService(ctx context.Context, id string) error {
	return mapError(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{}).Error)
}

func (r *CatalogGormRepository) CountServices(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Service{}).Count(&n).Error; err != nil {
		return 0, mapError(err)
	}
	return n, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *CatalogGormRepository) ListAvailability(ctx context.Context) ([]models.Availability, error) {
	var out []models.Availability
	if err := r.db.WithContext(ctx).Order("date ASC, time ASC").Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *CatalogGormRepository) UpsertAvailability(ctx context.Context, a *models.Availability) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "time"}},
			DoUpdates: clause.AssignmentColumns([]string{"slots"}),
		}).
		Create(a).Error
	if err != nil {
		return mapError(err)
	}

	// on conflict the stored row keeps its own id
	var stored models.Availability
	if err := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", a.Date, a.Time).
		First(&stored).Error; err != nil {
		return mapError(err)
	}
	*a = stored
	return nil
}

func (r *CatalogGormRepository) DeleteAvailability(ctx context.Context, id string) error {
	return mapError(r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Availability{}).Error)
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)

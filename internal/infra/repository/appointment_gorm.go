package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Owner
// --------------------------------------------------

func (r *AppointmentGormRepository) UserExists(
	ctx context.Context,
	userID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, mapError(err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Appointment (lifecycle)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return mapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUser(
	ctx context.Context,
	id string,
	userID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &ap, nil
}

// UpdateAppointmentForUser writes only the editable columns so a concurrent
// renumbering pass never loses its queue numbers.
func (r *AppointmentGormRepository) UpdateAppointmentForUser(
	ctx context.Context,
	id string,
	userID string,
	fields domain.Fields,
	now time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&ap).Error; err != nil {
			return err
		}

		domain.Apply(&ap, fields, now)

		return tx.Model(&ap).
			Select("name", "email", "service", "date", "time", "updated_at").
			Updates(&ap).Error
	})
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) DeleteAppointmentForUser(
	ctx context.Context,
	id string,
	userID string,
) (string, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", id, userID).
			First(&ap).Error; err != nil {
			return err
		}
		return tx.Delete(&ap).Error
	})
	if err != nil {
		return "", notFoundOr(err)
	}
	return ap.Date, nil
}

// --------------------------------------------------
// Appointment (reads)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID string,
) ([]models.Appointment, error) {

	var out []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *AppointmentGormRepository) LatestConfirmedForUser(
	ctx context.Context,
	userID string,
) (*models.Appointment, error) {

	var out []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.StatusConfirmed).
		Order("created_at DESC, id DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r *AppointmentGormRepository) ListAllAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var out []models.Appointment
	if err := r.db.WithContext(ctx).
		Order("date ASC, created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *AppointmentGormRepository) ListGlobalQueue(
	ctx context.Context,
) ([]models.Appointment, error) {

	var out []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("status = ?", domain.StatusConfirmed).
		Order("global_queue_number ASC NULLS LAST, date ASC, created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// --------------------------------------------------
// Queue
// --------------------------------------------------

// InScope runs fn in one transaction holding a transaction-scoped advisory
// lock on every scope key, so passes over the same scope from any instance
// are applied one after another. Keys are locked in the order given.
func (r *AppointmentGormRepository) InScope(
	ctx context.Context,
	scopes []domain.Scope,
	fn func(tx domain.ScopeTx) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, scope := range scopes {
			if err := tx.Exec(
				"SELECT pg_advisory_xact_lock(hashtext(?))",
				scope.Key(),
			).Error; err != nil {
				return err
			}
		}
		return fn(&gormScopeTx{
			AppointmentGormRepository: &AppointmentGormRepository{db: tx},
			tx:                        tx,
		})
	})
	return mapError(err)
}

// gormScopeTx reuses the lifecycle writes of the repository bound to the
// open transaction; their own transactions become savepoints.
type gormScopeTx struct {
	*AppointmentGormRepository
	tx *gorm.DB
}

func (s *gormScopeTx) GetAppointmentForUser(
	ctx context.Context,
	id string,
	userID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &ap, nil
}

func (s *gormScopeTx) ListByScope(
	ctx context.Context,
	scope domain.Scope,
) ([]models.Appointment, error) {

	q := s.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", domain.StatusConfirmed)

	if scope.IsGlobal() {
		q = q.Order("date ASC, created_at ASC, id ASC")
	} else {
		q = q.Where("date = ?", scope.Date()).Order("created_at ASC, id ASC")
	}

	var out []models.Appointment
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *gormScopeTx) SetQueueNumber(
	ctx context.Context,
	scope domain.Scope,
	id string,
	n int,
) error {

	column := "queue_number"
	if scope.IsGlobal() {
		column = "global_queue_number"
	}

	res := s.tx.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		UpdateColumn(column, n)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAppointmentNotFound
	}
	return mapError(err)
}

var (
	_ domain.Repository = (*AppointmentGormRepository)(nil)
	_ domain.ScopeTx    = (*gormScopeTx)(nil)
)

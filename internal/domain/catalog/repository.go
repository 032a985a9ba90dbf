package catalog

import (
	"context"

	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

var (
	ErrServiceNotFound      = httperr.ErrNotFound("service_not_found", "Service not found")
	ErrAvailabilityNotFound = httperr.ErrNotFound("availability_not_found", "Availability not found")

	ErrServiceExists = httperr.NewBusiness("service_already_exists", "Service already exists")
)

// DefaultAvailabilitySlots applies when an availability is created without
// an explicit slot count.
const DefaultAvailabilitySlots = 10

type Repository interface {
	// -------- Services --------
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id string) error
	CountServices(ctx context.Context) (int64, error)

	// -------- Availability --------
	ListAvailability(ctx context.Context) ([]models.Availability, error)
	// UpsertAvailability keeps one record per date+time; an existing one
	// only gets its slot count replaced.
	UpsertAvailability(ctx context.Context, a *models.Availability) error
	DeleteAvailability(ctx context.Context, id string) error
}

// DefaultServices are seeded into an empty catalog.
func DefaultServices() []models.Service {
	return []models.Service{
		{
			ID:   "birth-cert",
			Name: "Birth Certificate",
			Requirements: []string{
				"National ID",
				"Negative result (PSA)",
				"Affidavit of delay registration",
				"Voter certification",
				"Permanent record",
			},
		},
		{
			ID:   "marriage-cert",
			Name: "Marriage Certificate",
			Requirements: []string{
				"Valid ID",
				"Marriage contract (if applicable)",
				"PSA Certificate of Marriage",
				"Affidavit (if needed)",
			},
		},
		{
			ID:   "no-marriage-cert",
			Name: "Certificate of No Marriage",
			Requirements: []string{
				"Valid ID",
				"PSA Certificate of No Marriage",
				"Barangay Clearance",
				"Birth Certificate",
			},
		},
		{
			ID:   "death-reg",
			Name: "Death Registration",
			Requirements: []string{
				"Valid ID of informant",
				"Death certificate from hospital/clinic",
				"PSA Certificate of Death",
				"Affidavit (if needed)",
			},
		},
	}
}

// Package memory is a process-local store implementing every repository
// interface. It backs STORE_DRIVER=memory and the unit tests; queue semantics
// match the PostgreSQL store.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type Store struct {
	mu sync.RWMutex

	users        map[string]models.User
	appointments map[string]models.Appointment
	services     map[string]models.Service
	availability map[string]models.Availability
	auditLogs    []models.AuditLog
	nextAuditID  uint
}

func New() *Store {
	return &Store{
		users:        make(map[string]models.User),
		appointments: make(map[string]models.Appointment),
		services:     make(map[string]models.Service),
		availability: make(map[string]models.Availability),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// --------------------------------------------------
// Owner
// --------------------------------------------------

func (s *Store) UserExists(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok, nil
}

// --------------------------------------------------
// Appointment (lifecycle)
// --------------------------------------------------

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createAppointment(ap)
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	out := cloneAppointment(ap)
	return &out, nil
}

func (s *Store) GetAppointmentForUser(_ context.Context, id, userID string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointmentForUser(id, userID)
}

func (s *Store) UpdateAppointmentForUser(
	_ context.Context,
	id string,
	userID string,
	fields domain.Fields,
	now time.Time,
) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateAppointment(id, userID, fields, now)
}

func (s *Store) DeleteAppointmentForUser(_ context.Context, id, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteAppointment(id, userID)
}

// The helpers below must be called with s.mu held.

func (s *Store) createAppointment(ap *models.Appointment) {
	if ap.ID == "" {
		ap.ID = uuid.NewString()
	}
	s.appointments[ap.ID] = cloneAppointment(*ap)
}

func (s *Store) appointmentForUser(id, userID string) (*models.Appointment, error) {
	ap, ok := s.appointments[id]
	if !ok || ap.UserID != userID {
		return nil, domain.ErrAppointmentNotFound
	}
	out := cloneAppointment(ap)
	return &out, nil
}

func (s *Store) updateAppointment(id, userID string, fields domain.Fields, now time.Time) (*models.Appointment, error) {
	ap, ok := s.appointments[id]
	if !ok || ap.UserID != userID {
		return nil, domain.ErrAppointmentNotFound
	}
	domain.Apply(&ap, fields, now)
	s.appointments[id] = cloneAppointment(ap)

	out := cloneAppointment(ap)
	return &out, nil
}

func (s *Store) deleteAppointment(id, userID string) (string, error) {
	ap, ok := s.appointments[id]
	if !ok || ap.UserID != userID {
		return "", domain.ErrAppointmentNotFound
	}
	delete(s.appointments, id)
	return ap.Date, nil
}

// --------------------------------------------------
// Appointment (reads)
// --------------------------------------------------

func (s *Store) ListAppointmentsForUser(_ context.Context, userID string) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.filter(func(ap *models.Appointment) bool { return ap.UserID == userID })
	sortNewestFirst(out)
	return out, nil
}

func (s *Store) LatestConfirmedForUser(_ context.Context, userID string) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.filter(func(ap *models.Appointment) bool {
		return ap.UserID == userID && ap.Status == string(domain.StatusConfirmed)
	})
	if len(out) == 0 {
		return nil, nil
	}
	sortNewestFirst(out)
	return &out[0], nil
}

func (s *Store) ListAllAppointments(context.Context) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.filter(func(*models.Appointment) bool { return true })
	domain.SortForScope(domain.GlobalScope(), out)
	return out, nil
}

func (s *Store) ListGlobalQueue(context.Context) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	global := domain.GlobalScope()
	out := s.filter(global.Contains)
	domain.SortForScope(global, out)
	// unnumbered records go last, matching NULLS LAST
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].GlobalQueueNumber, out[j].GlobalQueueNumber
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out, nil
}

// --------------------------------------------------
// Queue
// --------------------------------------------------

// InScope holds the store write lock for the whole of fn and restores the
// previous appointment set when fn fails.
func (s *Store) InScope(ctx context.Context, _ []domain.Scope, fn func(tx domain.ScopeTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]models.Appointment, len(s.appointments))
	for id, ap := range s.appointments {
		snapshot[id] = cloneAppointment(ap)
	}

	if err := fn(&scopeTx{s: s}); err != nil {
		s.appointments = snapshot
		return err
	}
	return nil
}

type scopeTx struct {
	s *Store
}

func (tx *scopeTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	tx.s.createAppointment(ap)
	return nil
}

func (tx *scopeTx) GetAppointmentForUser(_ context.Context, id, userID string) (*models.Appointment, error) {
	return tx.s.appointmentForUser(id, userID)
}

func (tx *scopeTx) UpdateAppointmentForUser(
	_ context.Context,
	id string,
	userID string,
	fields domain.Fields,
	now time.Time,
) (*models.Appointment, error) {
	return tx.s.updateAppointment(id, userID, fields, now)
}

func (tx *scopeTx) DeleteAppointmentForUser(_ context.Context, id, userID string) (string, error) {
	return tx.s.deleteAppointment(id, userID)
}

func (tx *scopeTx) ListByScope(_ context.Context, scope domain.Scope) ([]models.Appointment, error) {
	out := tx.s.filter(scope.Contains)
	domain.SortForScope(scope, out)
	return out, nil
}

func (tx *scopeTx) SetQueueNumber(_ context.Context, scope domain.Scope, id string, n int) error {
	ap, ok := tx.s.appointments[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	v := n
	if scope.IsGlobal() {
		ap.GlobalQueueNumber = &v
	} else {
		ap.QueueNumber = &v
	}
	tx.s.appointments[id] = ap
	return nil
}

// filter must be called with s.mu held.
func (s *Store) filter(keep func(*models.Appointment) bool) []models.Appointment {
	out := make([]models.Appointment, 0)
	for _, ap := range s.appointments {
		ap := ap
		if keep(&ap) {
			out = append(out, cloneAppointment(ap))
		}
	}
	return out
}

func sortNewestFirst(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		if !aps[i].CreatedAt.Equal(aps[j].CreatedAt) {
			return aps[i].CreatedAt.After(aps[j].CreatedAt)
		}
		return aps[i].ID > aps[j].ID
	})
}

// cloneAppointment detaches pointer fields so callers cannot mutate stored
// state.
func cloneAppointment(ap models.Appointment) models.Appointment {
	ap.Time = cloneString(ap.Time)
	ap.QueueNumber = cloneInt(ap.QueueNumber)
	ap.GlobalQueueNumber = cloneInt(ap.GlobalQueueNumber)
	if ap.UpdatedAt != nil {
		t := *ap.UpdatedAt
		ap.UpdatedAt = &t
	}
	return ap
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	_ domain.Repository = (*Store)(nil)
	_ domain.ScopeTx    = (*scopeTx)(nil)
)

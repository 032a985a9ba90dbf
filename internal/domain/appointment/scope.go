package appointment

import (
	"sort"

	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

// Scope is a partition of confirmed appointments whose queue numbers must be
// dense and contiguous: a single date, or every date (global).
type Scope struct {
	date string
}

func DateScope(date string) Scope {
	return Scope{date: date}
}

func GlobalScope() Scope {
	return Scope{}
}

func (s Scope) IsGlobal() bool {
	return s.date == ""
}

// Date is empty for the global scope.
func (s Scope) Date() string {
	return s.date
}

// Key identifies the scope for locking.
func (s Scope) Key() string {
	if s.IsGlobal() {
		return "queue:global"
	}
	return "queue:date:" + s.date
}

// Kind is a low-cardinality label for metrics and logs.
func (s Scope) Kind() string {
	if s.IsGlobal() {
		return "global"
	}
	return "date"
}

func (s Scope) String() string {
	return s.Key()
}

// Contains reports whether ap takes part in the scope's numbering.
func (s Scope) Contains(ap *models.Appointment) bool {
	if ap.Status != string(StatusConfirmed) {
		return false
	}
	return s.IsGlobal() || ap.Date == s.date
}

// Number returns the queue number the scope owns on ap.
func (s Scope) Number(ap *models.Appointment) *int {
	if s.IsGlobal() {
		return ap.GlobalQueueNumber
	}
	return ap.QueueNumber
}

// SortForScope orders appointments the way queue numbers are handed out:
// ascending createdAt (global: date first), ties broken by id so the order is
// stable across passes.
func SortForScope(s Scope, aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		a, b := aps[i], aps[j]
		if s.IsGlobal() && a.Date != b.Date {
			return a.Date < b.Date
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

func TestScope_Key(t *testing.T) {
	if got := DateScope("2024-01-10").Key(); got != "queue:date:2024-01-10" {
		t.Errorf("date key = %q", got)
	}
	if got := GlobalScope().Key(); got != "queue:global" {
		t.Errorf("global key = %q", got)
	}
	if !GlobalScope().IsGlobal() || DateScope("2024-01-10").IsGlobal() {
		t.Error("IsGlobal mismatch")
	}
}

func TestScope_Contains(t *testing.T) {
	confirmed := &models.Appointment{Date: "2024-01-10", Status: string(StatusConfirmed)}
	other := &models.Appointment{Date: "2024-01-11", Status: string(StatusConfirmed)}
	unknown := &models.Appointment{Date: "2024-01-10", Status: "pending"}

	s := DateScope("2024-01-10")
	if !s.Contains(confirmed) {
		t.Error("expected same-date confirmed appointment in scope")
	}
	if s.Contains(other) {
		t.Error("expected other date outside scope")
	}
	if s.Contains(unknown) {
		t.Error("expected non-confirmed appointment outside scope")
	}
	if !GlobalScope().Contains(other) {
		t.Error("expected global scope to contain every confirmed appointment")
	}
}

func TestSortForScope(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	aps := []models.Appointment{
		{ID: "c", Date: "2024-01-10", CreatedAt: t0.Add(2 * time.Minute)},
		{ID: "b", Date: "2024-01-11", CreatedAt: t0},
		{ID: "a2", Date: "2024-01-10", CreatedAt: t0},
		{ID: "a1", Date: "2024-01-10", CreatedAt: t0},
	}

	perDate := append([]models.Appointment(nil), aps...)
	SortForScope(DateScope("2024-01-10"), perDate)
	assertOrder(t, perDate, "a1", "a2", "b", "c")

	global := append([]models.Appointment(nil), aps...)
	SortForScope(GlobalScope(), global)
	assertOrder(t, global, "a1", "a2", "c", "b")
}

func TestValidDate(t *testing.T) {
	for _, d := range []string{"2024-01-10", "2024-02-29"} {
		if !ValidDate(d) {
			t.Errorf("ValidDate(%q) = false", d)
		}
	}
	for _, d := range []string{"", "2024-1-10", "10/01/2024", "2023-02-29"} {
		if ValidDate(d) {
			t.Errorf("ValidDate(%q) = true", d)
		}
	}
}

func assertOrder(t *testing.T, aps []models.Appointment, ids ...string) {
	t.Helper()
	if len(aps) != len(ids) {
		t.Fatalf("len = %d, want %d", len(aps), len(ids))
	}
	for i, id := range ids {
		if aps[i].ID != id {
			t.Fatalf("position %d = %s, want %s (order %v)", i, aps[i].ID, id, idsOf(aps))
		}
	}
}

func idsOf(aps []models.Appointment) []string {
	out := make([]string, len(aps))
	for i := range aps {
		out[i] = aps[i].ID
	}
	return out
}

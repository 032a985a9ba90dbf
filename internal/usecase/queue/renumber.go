// Package queue keeps queue numbers dense and ordered after every change to
// the set of confirmed appointments.
package queue

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/infra/lock"
	"github.com/BruksfildServices01/registrar-queue/internal/metrics"
)

// Engine renumbers queue scopes. Passes over the same scope are serialized
// by the locker and applied atomically by the repository.
type Engine struct {
	repo    domain.Repository
	locker  lock.Locker
	metrics metrics.Recorder
	log     zerolog.Logger
}

func NewEngine(
	repo domain.Repository,
	locker lock.Locker,
	rec metrics.Recorder,
	log zerolog.Logger,
) *Engine {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Engine{
		repo:    repo,
		locker:  locker,
		metrics: rec,
		log:     log,
	}
}

// RenumberDate renumbers the confirmed appointments of one date.
func (e *Engine) RenumberDate(ctx context.Context, date string) error {
	return e.Renumber(ctx, domain.DateScope(date))
}

// RenumberGlobal renumbers every confirmed appointment across all dates.
func (e *Engine) RenumberGlobal(ctx context.Context) error {
	return e.Renumber(ctx, domain.GlobalScope())
}

// Renumber assigns 1..N to the confirmed appointments of scope in ascending
// creation order. Running it twice without an intervening change writes the
// same numbers. An empty scope succeeds without writing anything.
func (e *Engine) Renumber(ctx context.Context, scope domain.Scope) error {
	return e.Apply(ctx, []domain.Scope{scope}, nil)
}

// Apply runs mutate and then renumbers every scope in scopes, all in one
// store transaction and under every scope lock. When any step fails nothing
// is committed, so a lifecycle write never lands without its renumbering.
// A nil mutate only renumbers.
func (e *Engine) Apply(
	ctx context.Context,
	scopes []domain.Scope,
	mutate func(tx domain.ScopeTx) error,
) error {
	start := time.Now()
	scopes = lockOrder(scopes)
	sizes := make([]int, len(scopes))

	var mutateErr error
	err := e.apply(ctx, scopes, sizes, func(tx domain.ScopeTx) error {
		if mutate == nil {
			return nil
		}
		mutateErr = mutate(tx)
		return mutateErr
	})
	if mutateErr != nil {
		return mutateErr
	}

	for i, scope := range scopes {
		e.metrics.ObserveRenumber(scope.Kind(), sizes[i], time.Since(start), err)
	}
	if err != nil {
		e.log.Error().Err(err).
			Strs("scopes", keys(scopes)).
			Msg("queue renumbering failed")
		return err
	}

	e.log.Debug().
		Strs("scopes", keys(scopes)).
		Ints("sizes", sizes).
		Dur("took", time.Since(start)).
		Msg("queue renumbered")
	return nil
}

func (e *Engine) apply(
	ctx context.Context,
	scopes []domain.Scope,
	sizes []int,
	mutate func(tx domain.ScopeTx) error,
) error {
	for _, scope := range scopes {
		unlock, err := e.locker.Acquire(ctx, scope.Key())
		if err != nil {
			return fmt.Errorf("acquire %s: %w", scope.Key(), err)
		}
		defer unlock()
	}

	return e.repo.InScope(ctx, scopes, func(tx domain.ScopeTx) error {
		if err := mutate(tx); err != nil {
			return err
		}
		for i, scope := range scopes {
			n, err := renumberScope(ctx, tx, scope)
			if err != nil {
				return err
			}
			sizes[i] = n
		}
		return nil
	})
}

func renumberScope(ctx context.Context, tx domain.ScopeTx, scope domain.Scope) (int, error) {
	aps, err := tx.ListByScope(ctx, scope)
	if err != nil {
		return 0, err
	}

	// the store already orders rows; sorting again keeps the
	// tie-break identical across backends
	domain.SortForScope(scope, aps)

	for i := range aps {
		want := i + 1
		if cur := scope.Number(&aps[i]); cur != nil && *cur == want {
			continue
		}
		if err := tx.SetQueueNumber(ctx, scope, aps[i].ID, want); err != nil {
			return 0, fmt.Errorf("set queue number on %s: %w", aps[i].ID, err)
		}
	}
	return len(aps), nil
}

// lockOrder drops duplicate scopes and sorts the rest by key so concurrent
// multi-scope passes acquire locks in the same order.
func lockOrder(scopes []domain.Scope) []domain.Scope {
	seen := make(map[string]bool, len(scopes))
	out := make([]domain.Scope, 0, len(scopes))
	for _, s := range scopes {
		if seen[s.Key()] {
			continue
		}
		seen[s.Key()] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func keys(scopes []domain.Scope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = s.Key()
	}
	return out
}

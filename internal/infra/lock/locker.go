// Package lock serializes work per queue scope, either inside one process or
// across every instance sharing a Redis server.
package lock

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
)

// ErrTimeout is returned when the lock could not be taken within the wait
// budget. It is reported to callers as a temporarily unavailable store.
var ErrTimeout = fmt.Errorf("%w: scope lock wait exceeded", httperr.ErrStoreUnavailable)

// Locker grants exclusive ownership of a key. The returned unlock func must
// be called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (unlock func(), err error)
}

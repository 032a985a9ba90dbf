package appointment

import (
	"errors"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
)

// scopeAttempts bounds how often a write re-reads the appointment after a
// concurrent date change moved it out of the scope it locked.
const scopeAttempts = 3

func retryScope(fn func() error) error {
	var err error
	for i := 0; i < scopeAttempts; i++ {
		if err = fn(); !errors.Is(err, domain.ErrScopeChanged) {
			return err
		}
	}
	return err
}

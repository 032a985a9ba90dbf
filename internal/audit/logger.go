package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

// Filter narrows an audit log listing. Zero values mean "any".
type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type Repository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Logger struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Logger {
	return &Logger{repo: repo, now: time.Now}
}

func (l *Logger) Log(
	ctx context.Context,
	userID string,
	action string,
	entity string,
	entityID string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  metaJSON,
		CreatedAt: l.now(),
	}

	return l.repo.CreateAuditLog(ctx, &log)
}

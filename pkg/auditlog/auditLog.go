package auditlog

import (
	"context"
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"go.uber.org/zap"
)

type Store interface {
	PersistLog(ctx context.Context, auditLog models.AuditLog, data interface{}) error
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

type Auditlog struct {
	store   Store
	logger  *zap.Logger
	timeout time.Duration
}

func NewAuditLog(store Store, logger *zap.Logger) *Auditlog {
	return &Auditlog{
		store:   store,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Log writes an entry with no acting user. It is meant to be called with
// `go`, so it owns its context and never returns an error.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	a.write(nil, action, data, item)
}

func (a *Auditlog) LogAs(userID int, action string, data interface{}, item Auditable) {
	a.write(&userID, action, data, item)
}

func (a *Auditlog) write(userID *int, action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action
	auditLog.UserID = userID

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.store.PersistLog(ctx, auditLog, data); err != nil {
		a.logger.Error("unable to create audit log entry",
			zap.String("resource_type", auditLog.ResourceType),
			zap.Int("resource_id", auditLog.ResourceID),
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("created audit log entry",
		zap.String("resource_type", auditLog.ResourceType),
		zap.Int("resource_id", auditLog.ResourceID),
		zap.String("action", action),
	)
}

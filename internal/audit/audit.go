// Package audit records tenant activity. Recording is best-effort so a log
// failure never breaks the request that triggered it.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/reservaon/api/internal/models"
	"github.com/reservaon/api/internal/repository"
	"go.uber.org/zap"
)

type Recorder struct {
	logs   *repository.ActivityLogRepository
	logger *zap.Logger
}

func NewRecorder(logs *repository.ActivityLogRepository, logger *zap.Logger) *Recorder {
	return &Recorder{logs: logs, logger: logger}
}

// Record appends an activity entry in the background.
func (r *Recorder) Record(companyID uuid.UUID, userID *uuid.UUID, action, details string) {
	entry := &models.ActivityLog{
		ID:        uuid.New(),
		CompanyID: companyID,
		UserID:    userID,
		Action:    action,
		Details:   details,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := r.logs.Insert(ctx, entry); err != nil {
			r.logger.Warn("failed to record activity",
				zap.String("action", action),
				zap.Error(err))
		}
	}()
}

package workers

import (
	"context"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

type WorkersContainer struct {
	AuditWorker *AuditWorker
}

// QueueAuditEmitter pushes roster changes onto the Redis stream for the audit
// worker instead of writing them inline.
type QueueAuditEmitter struct {
	queue *common.RedisQueueService
}

func NewQueueAuditEmitter(queue *common.RedisQueueService) *QueueAuditEmitter {
	return &QueueAuditEmitter{queue: queue}
}

func (e *QueueAuditEmitter) EmitRosterChange(ctx context.Context, entry *gormModels.EventAuditLog) {
	item := &common.AuditQueueItem{
		EventID:   entry.EventID,
		StationID: entry.StationID,
		MemberID:  entry.MemberID,
		Action:    entry.Action,
		At:        entry.At,
	}
	// best effort; the audit log is advisory, the roster row is the record
	_ = e.queue.EnqueueAudit(ctx, constants.AuditStreamName, item)
}

// InitWorkers starts the background consumers
func InitWorkers(
	ctx context.Context,
	redQ *common.RedisQueueService,
	audit repositories.AuditRepository,
) *WorkersContainer {
	auditWorker := NewAuditWorker("audit-worker-1", redQ, audit)

	go auditWorker.Start(ctx)

	return &WorkersContainer{
		AuditWorker: auditWorker,
	}
}

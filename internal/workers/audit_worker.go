package workers

import (
	"context"
	"log"
	"time"

	"brigade-ops/rollcall/internal/common"
	"brigade-ops/rollcall/internal/constants"
	"brigade-ops/rollcall/internal/db/repositories"
	gormModels "brigade-ops/rollcall/internal/models/gorm"
)

// AuditWorker drains the Redis audit stream into the audit table, keeping the
// roster toggle path free of synchronous audit writes.
type AuditWorker struct {
	workerID   string
	redisQueue *common.RedisQueueService
	audit      repositories.AuditRepository
}

func NewAuditWorker(workerID string, redisQueue *common.RedisQueueService, audit repositories.AuditRepository) *AuditWorker {
	return &AuditWorker{
		workerID:   workerID,
		redisQueue: redisQueue,
		audit:      audit,
	}
}

// Start consumes the audit stream until the context is cancelled
func (w *AuditWorker) Start(ctx context.Context) {
	if err := w.redisQueue.CreateConsumerGroup(ctx, constants.AuditStreamName, constants.AuditGroupName); err != nil {
		log.Printf("[AuditWorker] Warning - failed to create consumer group: %v", err)
	}

	log.Printf("[%s] Started processing queue: %s", w.workerID, constants.AuditStreamName)

	processedCount := 0
	errorCount := 0

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Shutting down. Processed: %d, Errors: %d", w.workerID, processedCount, errorCount)
			return
		default:
			item, messageID, err := w.redisQueue.DequeueAudit(ctx, constants.AuditStreamName, constants.AuditGroupName, w.workerID, 5*time.Second)
			if err != nil {
				log.Printf("[%s] Error dequeuing: %v", w.workerID, err)
				time.Sleep(1 * time.Second)
				continue
			}

			if item == nil {
				continue
			}

			if err := w.writeEntry(ctx, item); err != nil {
				log.Printf("[%s] Error writing audit entry for event %s: %v", w.workerID, item.EventID, err)
				errorCount++
				// acknowledged anyway so a poison entry cannot wedge the stream
			} else {
				processedCount++
			}

			if err := w.redisQueue.AckAudit(ctx, constants.AuditStreamName, constants.AuditGroupName, messageID); err != nil {
				log.Printf("[%s] Error acknowledging message %s: %v", w.workerID, messageID, err)
			}
		}
	}
}

func (w *AuditWorker) writeEntry(ctx context.Context, item *common.AuditQueueItem) error {
	return w.audit.Append(ctx, &gormModels.EventAuditLog{
		EventID:   item.EventID,
		StationID: item.StationID,
		MemberID:  item.MemberID,
		Action:    item.Action,
		At:        item.At,
	})
}

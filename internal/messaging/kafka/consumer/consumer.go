package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-dailyreport/internal/audit"
	"go-dailyreport/internal/events"
)

// ConsumeAuditTrail turns domain events into audit_logs rows. Decode
// failures are committed and skipped so a bad message cannot wedge the
// group; persistence failures are retried on the next fetch.
func ConsumeAuditTrail(
	ctx context.Context,
	reader *kafkago.Reader,
	repo audit.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit_trail")
	log.Info("audit trail consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit trail consumer stopped")
				return
			}
			log.Error("fetch audit message failed", zap.Error(err))
			continue
		}

		entry, err := entryFromMessage(msg)
		if err != nil {
			log.Error("decode audit event failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := repo.Create(ctx, entry); err != nil {
			log.Error("persist audit entry failed",
				zap.String("action", entry.Action),
				zap.String("actor_code", entry.ActorCode),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit audit message failed", zap.Error(err))
			continue
		}

		log.Info("audit entry recorded",
			zap.String("action", entry.Action),
			zap.String("actor_code", entry.ActorCode),
			zap.String("subject_id", entry.SubjectID),
		)
	}
}

func entryFromMessage(msg kafkago.Message) (*audit.AuditLog, error) {
	switch msg.Topic {
	case events.EmployeeCreatedTopic:
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return nil, err
		}
		return &audit.AuditLog{
			ID:        uuid.New(),
			Action:    event.EventType,
			ActorCode: event.EmployeeCode,
			SubjectID: event.EmployeeCode,
			Detail:    fmt.Sprintf("employee %s (%s) registered as %s", event.EmployeeCode, event.EmployeeName, event.Role),
			CreatedAt: time.Now().UTC(),
		}, nil
	case events.ReportSubmittedTopic:
		var event events.ReportSubmittedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return nil, err
		}
		return &audit.AuditLog{
			ID:        uuid.New(),
			Action:    event.EventType,
			ActorCode: event.EmployeeCode,
			SubjectID: fmt.Sprintf("%d", event.ReportID),
			Detail:    fmt.Sprintf("report %q submitted for %s", event.Title, event.ReportDate),
			CreatedAt: time.Now().UTC(),
		}, nil
	}
	return nil, fmt.Errorf("unknown topic: %s", msg.Topic)
}

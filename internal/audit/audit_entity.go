package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only trail row produced by the event consumer.
type AuditLog struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Action    string    `gorm:"column:action;type:varchar(50);not null"`
	ActorCode string    `gorm:"column:actor_code;type:varchar(10);not null;index"`
	SubjectID string    `gorm:"column:subject_id;type:varchar(50);not null"`
	Detail    string    `gorm:"column:detail;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

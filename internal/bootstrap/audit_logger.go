package bootstrap

import "context"

// AuditLog is the process-level audit entry (startup, shutdown). The
// per-request audit trail lives in the audit package and flows through
// Kafka instead.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

// Package events defines the payloads written to the transactional
// outbox and consumed by the audit trail.
package events

import "time"

const (
	EmployeeCreatedTopic = "employee.created"
	ReportSubmittedTopic = "report.submitted"
)

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeCode string    `json:"employee_code"`
	EmployeeName string    `json:"employee_name"`
	Role         string    `json:"role"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type ReportSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	ReportID     uint64    `json:"report_id"`
	EmployeeCode string    `json:"employee_code"`
	ReportDate   string    `json:"report_date"`
	Title        string    `json:"title"`
	OccurredAt   time.Time `json:"occurred_at"`
}

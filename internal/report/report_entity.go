package report

import (
	"time"

	"go-dailyreport/internal/record"
)

type Report struct {
	ID           uint64        `gorm:"column:id;primaryKey;autoIncrement"`
	ReportDate   time.Time     `gorm:"column:report_date;type:date;not null"`
	Title        string        `gorm:"column:title;type:varchar(100);not null"`
	Content      string        `gorm:"column:content;type:varchar(600);not null"`
	EmployeeCode string        `gorm:"column:employee_code;type:varchar(10);not null;index"`
	Employee     *EmployeeRef  `gorm:"foreignKey:EmployeeCode;references:Code"`
	Status       record.Status `gorm:"column:status;type:varchar(10);not null;default:ACTIVE"`
	CreatedAt    time.Time     `gorm:"column:created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

// EmployeeRef is the read-only slice of the employees table the report
// screens need for the author column. The employee package owns writes.
type EmployeeRef struct {
	Code string `gorm:"column:code;primaryKey"`
	Name string `gorm:"column:name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

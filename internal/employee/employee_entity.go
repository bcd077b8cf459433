package employee

import (
	"time"

	"go-dailyreport/internal/record"
	"go-dailyreport/internal/role"
)

type Employee struct {
	Code      string        `gorm:"column:code;type:varchar(10);primaryKey"`
	Name      string        `gorm:"column:name;type:varchar(20);not null"`
	Password  string        `gorm:"column:password;type:varchar(255);not null"`
	Role      role.Role     `gorm:"column:role;type:varchar(10);not null"`
	Status    record.Status `gorm:"column:status;type:varchar(10);not null;default:ACTIVE"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

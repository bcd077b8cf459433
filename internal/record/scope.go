// Package record defines the logical-delete status shared by all
// persisted entities. Rows are never removed; deletion flips the status
// and every default read goes through the Active scope.
package record

import "gorm.io/gorm"

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// Active restricts a query to non-deleted rows.
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", StatusActive)
	}
}

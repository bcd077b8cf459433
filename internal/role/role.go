// Package role defines the two access levels and keeps the visibility
// rules in one place instead of scattered conditionals.
package role

import "fmt"

type Role string

const (
	Admin   Role = "ADMIN"
	General Role = "GENERAL"
)

func Parse(s string) (Role, error) {
	switch Role(s) {
	case Admin:
		return Admin, nil
	case General:
		return General, nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

func (r Role) Valid() bool {
	return r == Admin || r == General
}

// CanViewAllReports reports whether the role sees every employee's
// daily reports or only its own.
func (r Role) CanViewAllReports() bool {
	return r == Admin
}

// CanManageEmployees reports whether the role may mutate employee
// records.
func (r Role) CanManageEmployees() bool {
	return r == Admin
}

// Label is the display name used by the templates.
func (r Role) Label() string {
	if r == Admin {
		return "管理者"
	}
	return "一般"
}

package employee

import "go-dailyreport/internal/role"

// Form DTOs are bound from the HTML forms; the password field carries
// no binding tag because blank handling differs between add and update.
type CreateEmployeeForm struct {
	Code     string `form:"code" binding:"required,max=10,alphanum"`
	Name     string `form:"name" binding:"required,max=20"`
	Password string `form:"password"`
	Role     string `form:"role" binding:"required"`
}

type UpdateEmployeeForm struct {
	Name     string `form:"name" binding:"required,max=20"`
	Password string `form:"password"`
	Role     string `form:"role" binding:"required"`
}

type CreateEmployeeRequest struct {
	Code     string
	Name     string
	Password string // plain text, hashed by the service
	Role     role.Role
}

type UpdateEmployeeRequest struct {
	Name     string
	Password string // blank means "persist as-is" (see service)
	Role     role.Role
}

type EmployeeResponse struct {
	Code      string
	Name      string
	Role      string
	RoleLabel string
	CreatedAt string
	UpdatedAt string
}

package auth

type LoginForm struct {
	Code     string `form:"code"`
	Password string `form:"password"`
}

type SessionResponse struct {
	EmployeeCode string
	Name         string
	Role         string
}

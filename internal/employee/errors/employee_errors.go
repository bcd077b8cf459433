package employeeerrors

import (
	"net/http"

	"go-dailyreport/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"従業員が見つかりません",
		http.StatusNotFound,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"既に登録されている社員番号です",
		http.StatusConflict,
	)
	ErrPermissionDenied = apperror.New(
		apperror.CodePermissionDenied,
		"権限がありません",
		http.StatusForbidden,
	)
)

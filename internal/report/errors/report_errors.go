package reporterrors

import (
	"net/http"

	"go-dailyreport/internal/shared/apperror"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"日報が見つかりません",
		http.StatusNotFound,
	)
	ErrDuplicateReportDate = apperror.New(
		apperror.CodeConflict,
		"既に登録されている日付です",
		http.StatusConflict,
	)
	ErrReportOwnerNotFound = apperror.New(
		apperror.CodeNotFound,
		"従業員が見つかりません",
		http.StatusNotFound,
	)
)

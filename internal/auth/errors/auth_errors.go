package autherrors

import (
	"net/http"

	"go-dailyreport/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"社員番号またはパスワードが正しくありません",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"システムエラーが発生しました",
		http.StatusInternalServerError,
	)
)

package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"対象のデータが見つかりません",
		http.StatusNotFound,
	)

	ErrPermissionDenied = New(
		CodePermissionDenied,
		"権限がありません",
		http.StatusForbidden,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"ログインしてください",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"入力内容に誤りがあります",
		http.StatusBadRequest,
	)

	ErrInternal = New(
		CodeInternalError,
		"予期しないエラーが発生しました",
		http.StatusInternalServerError,
	)
)

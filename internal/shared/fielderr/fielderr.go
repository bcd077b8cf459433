// Package fielderr carries field-level validation errors from the
// service layer back to the form templates. The messages are the
// user-facing strings the product defines; they are attached to the
// offending field and never surfaced as failures.
package fielderr

// Kind enumerates the business validation error kinds.
type Kind int

const (
	Blank Kind = iota
	Halfsize
	Range
	DuplicateDate
	DuplicateCode
)

func (k Kind) Message() string {
	switch k {
	case Blank:
		return "値を入力してください"
	case Halfsize:
		return "パスワードは半角英数字のみで入力してください"
	case Range:
		return "8文字以上16文字以下で入力してください"
	case DuplicateDate:
		return "既に登録されている日付です"
	case DuplicateCode:
		return "既に登録されている社員番号です"
	}
	return "入力内容に誤りがあります"
}

// Errors maps a form field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Set(field string, kind Kind) {
	e[field] = kind.Message()
}

func (e Errors) SetMessage(field, message string) {
	e[field] = message
}

func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e Errors) Any() bool {
	return len(e) > 0
}

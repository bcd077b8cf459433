package fielderr

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// FromValidator flattens gin binding errors into per-field messages.
// The field names come from the form tag (see apperror.Init), so they
// line up with what the templates reference.
func FromValidator(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}

	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs
	}

	for _, e := range vErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			errs.Set(field, Blank)
		case "max":
			errs.SetMessage(field, e.Param()+"文字以下で入力してください")
		case "alphanum":
			errs.SetMessage(field, "半角英数字のみで入力してください")
		default:
			errs.SetMessage(field, formatFieldName(field)+" is invalid")
		}
	}

	return errs
}

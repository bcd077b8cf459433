package employee

import (
	"regexp"

	"go-dailyreport/internal/shared/fielderr"
)

var halfWidthAlnum = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidatePassword applies the password rules for the add and update
// screens. A blank password yields no message; callers decide whether
// blank is acceptable. Both messages are returned together when the
// value breaks both rules.
func ValidatePassword(password string) string {
	if password == "" {
		return ""
	}

	var msg string
	if !halfWidthAlnum.MatchString(password) {
		msg += fielderr.Halfsize.Message()
	}
	if len(password) < 8 || len(password) > 16 {
		msg += fielderr.Range.Message()
	}
	return msg
}

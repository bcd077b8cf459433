package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-dailyreport/internal/shared/fielderr"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"blank skips validation", "", ""},
		{"valid", "password123", ""},
		{"too short", "abc", fielderr.Range.Message()},
		{"too long", "abcdefghijklmnopq", fielderr.Range.Message()},
		{"non alphanumeric", "abcd efgh!", fielderr.Halfsize.Message()},
		{"both rules broken", "ab!", fielderr.Halfsize.Message() + fielderr.Range.Message()},
		{"boundary 8", "abcdefg1", ""},
		{"boundary 16", "abcdefghijklmno1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}

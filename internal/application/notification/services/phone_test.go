package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"local leading zero", "081234567890", "6281234567890"},
		{"already international", "6281234567890", "6281234567890"},
		{"plus prefix", "+6281234567890", "6281234567890"},
		{"formatted", "+62 812-3456-7890", "6281234567890"},
		{"bare national", "81234567890", "6281234567890"},
		{"empty", "", ""},
		{"only punctuation", "+-()", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw, "62"))
		})
	}
}

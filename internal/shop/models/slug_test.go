package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips punctuation", "Joe's Garage!!", "joes-garage"},
		{"collapses separators", "Main   Street__Auto--Shop", "main-street-auto-shop"},
		{"lowercases", "QUICK LUBE", "quick-lube"},
		{"keeps hyphens", "drive-in-service", "drive-in-service"},
		{"keeps accented letters", "Café Motors", "café-motors"},
		{"trims surrounding space", "  Tire Town  ", "tire-town"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, in := range []string{"Joe's Garage!!", "Main Street Auto", "x"} {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestSlugify_Truncates(t *testing.T) {
	long := strings.Repeat("garage ", 20)
	assert.LessOrEqual(t, utf8.RuneCountInString(Slugify(long)), 50)

	accented := strings.Repeat("café ", 20)
	slug := Slugify(accented)
	assert.LessOrEqual(t, utf8.RuneCountInString(slug), 50)
	assert.True(t, utf8.ValidString(slug))
}

package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil input", nil, nil},
		{"empty input", []string{}, []string{}},
		{"trims whitespace", []string{"  foo ", "bar"}, []string{"foo", "bar"}},
		{"drops empties", []string{"foo", "", "  "}, []string{"foo"}},
		{"removes duplicates preserving order", []string{"foo", "bar", "foo"}, []string{"foo", "bar"}},
		{"case sensitive", []string{"Foo", "foo"}, []string{"Foo", "foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"lowercases", []string{"  FOO ", "bar"}, []string{"foo", "bar"}},
		{"dedupes case-insensitively", []string{"Foo", "foo", "FOO"}, []string{"foo"}},
		{"drops empties", []string{"", "  ", "a"}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrimLower(tt.input))
		})
	}
}

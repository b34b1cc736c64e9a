package diagram

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveWholeWords(t *testing.T) {
	re := regexp.MustCompile(`the|an|a`)
	tests := []struct {
		in   string
		want string
	}{
		{"a color", " color"},
		{"an engine", " engine"},
		{"the owner", " owner"},
		{"banana", "banana"},
		{"idéa", "idéa"},
		{"año a", "año "},
		{"then a_b", "then a_b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, removeWholeWords(re, tt.in))
		})
	}
}

func TestAtWordBoundaries(t *testing.T) {
	s := "Café Bar"
	assert.False(t, atWordBoundaries(s, 0, 3), "Caf touches é")
	assert.True(t, atWordBoundaries(s, 0, len("Café")))
	assert.True(t, atWordBoundaries(s, len("Café "), len(s)))
	assert.False(t, atWordBoundaries("x9", 0, 1))
}

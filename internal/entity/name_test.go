package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normal", "france", "france"},
		{"upper case", "FRANCE", "france"},
		{"surrounding space", "  France\t", "france"},
		{"inner space kept", "New Zealand", "new zealand"},
		{"accented letters fold", "ÉCOLE", "école"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestSameName(t *testing.T) {
	assert.True(t, SameName("Science Fiction", " science fiction "))
	assert.False(t, SameName("Science Fiction", "Science-Fiction"))
}

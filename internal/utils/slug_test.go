package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Barbearia do Zé", "barbearia-do-z"},
		{"  Studio  Hair  ", "studio-hair"},
		{"nails_and_spa", "nails-and-spa"},
		{"Clínica São João", "clnica-so-joo"},
		{"---", ""},
		{"UPPER", "upper"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSlug(tt.in), "input %q", tt.in)
	}
}

func TestDedupeSlug(t *testing.T) {
	deduped := DedupeSlug("barbearia")

	assert.True(t, strings.HasPrefix(deduped, "barbearia-"))
	assert.NotEqual(t, "barbearia", deduped)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ze@example.com", NormalizeEmail("  Ze@Example.COM "))
}

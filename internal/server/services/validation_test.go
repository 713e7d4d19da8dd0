package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "jo@x.com", SanitizeEmail("  Jo@X.COM\n"))
}

func TestCheckEmailFormat(t *testing.T) {
	valid := []string{"a@x.com", "first.last+tag@sub.example.org", "o'neil@x.io"}
	invalid := []string{"", "t.t.com", "t@t.", "a@x", "A <a@x.com>", "a b@x.com", strings.Repeat("a", 250) + "@x.com"}

	for _, e := range valid {
		assert.True(t, CheckEmailFormat(e), e)
	}
	for _, e := range invalid {
		assert.False(t, CheckEmailFormat(e), e)
	}
}

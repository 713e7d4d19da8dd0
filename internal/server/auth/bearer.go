package auth

import (
	"strings"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
)

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// value. An empty header yields common.ErrUnauthorizedAccess, any other
// shape yields common.ErrInvalidAccessToken.
func ParseBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", common.ErrUnauthorizedAccess
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerTokenType) {
		return "", common.ErrInvalidAccessToken
	}

	return parts[1], nil
}

// FormatBearer is the inverse of ParseBearer.
func FormatBearer(token string) string {
	return common.BearerTokenType + " " + token
}

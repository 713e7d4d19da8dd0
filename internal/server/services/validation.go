package services

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
)

const (
	maxEmailLen    = 254
	maxPasswordLen = 128
	maxNameLen     = 30
)

var emailRule = regexp.MustCompile(`^[a-zA-Z0-9._%+'-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SanitizeEmail lower-cases and trims an e-mail address.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckEmailFormat reports whether email is a plain, syntactically valid address.
func CheckEmailFormat(email string) bool {
	if len(email) > maxEmailLen {
		return false
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return false
	}
	return emailRule.MatchString(email)
}

// requireString records a required/blank error for field and reports whether
// the value can be validated further.
func requireString(v *common.ValidationError, field string, value *string) bool {
	if value == nil {
		v.Add(field, common.MsgFieldRequired)
		return false
	}
	if strings.TrimSpace(*value) == "" {
		v.Add(field, common.MsgFieldBlank)
		return false
	}
	return true
}

func maxLength(v *common.ValidationError, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		v.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", limit))
	}
}

// checkEmail validates a required e-mail field and returns the sanitised value.
func checkEmail(v *common.ValidationError, field string, value *string) (string, bool) {
	if !requireString(v, field, value) {
		return "", false
	}
	email := SanitizeEmail(*value)
	if !CheckEmailFormat(email) {
		v.Add(field, common.MsgInvalidEmail)
		return "", false
	}
	return email, true
}

func checkPassword(v *common.ValidationError, field string, value *string) {
	if requireString(v, field, value) {
		maxLength(v, field, *value, maxPasswordLen)
	}
}

func checkName(v *common.ValidationError, field string, value *string) {
	if value != nil {
		maxLength(v, field, *value, maxNameLen)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

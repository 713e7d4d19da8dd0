package common

import (
	"sort"
	"strings"
)

// Messages shared by request validators.
const (
	MsgFieldRequired = "This field is required."
	MsgFieldBlank    = "This field may not be blank."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgEmailTaken    = "E-mail address is already taken!"
	MsgSamePassword  = "New password must be different from the old password."
)

// ValidationError reports per-field input problems. Keys are request field
// names, values are human readable messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns a ValidationError with a single field message.
func NewValidationError(field, msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Add appends msg to the messages of field.
func (v *ValidationError) Add(field, msg string) {
	if v.Fields == nil {
		v.Fields = make(map[string][]string)
	}
	v.Fields[field] = append(v.Fields[field], msg)
}

// Empty reports whether no field errors were collected.
func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

// Err returns v as an error, or nil when it is empty.
func (v *ValidationError) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(v.Fields[k], " "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

package schema

import (
	"regexp"

	"github.com/google/uuid"
)

// LocalIDKey names the identity property injected into every definition.
const LocalIDKey = "_localId"

// LocalIDPattern constrains _localId values to canonical UUID strings.
const LocalIDPattern = "^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$"

var localIDExpr = regexp.MustCompile(LocalIDPattern)

// LocalIDProperty returns a fresh copy of the identity property schema.
func LocalIDProperty() Property {
	return Property{
		KeywordType:    TypeString,
		KeywordPattern: LocalIDPattern,
		KeywordOptions: map[string]any{
			"hidden": true,
		},
	}
}

// NewLocalID returns a random identity value for a new record.
func NewLocalID() string {
	return uuid.NewString()
}

// IsLocalID reports whether value satisfies the identity pattern.
func IsLocalID(value string) bool {
	if !localIDExpr.MatchString(value) {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

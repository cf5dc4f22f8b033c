package utils

import "github.com/google/uuid"

// NewRef returns a reference id for audit records (conversions, purchases).
func NewRef() string {
	return uuid.New().String()
}

// IsRef checks if the string is a valid reference id
func IsRef(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

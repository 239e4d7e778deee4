// Package validation holds small pointer and formatting helpers shared by
// the bridge marshaling code.
package validation

import "time"

func StringPtr(s string) *string {
	return &s
}

// StringPtrIfNotEmpty returns a pointer to s when non-empty, otherwise nil.
func StringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

func BoolPtr(b bool) *bool {
	return &b
}

func IntPtr(i int) *int {
	return &i
}

// GetStringOrEmpty returns the string value or "" when nil.
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetStringOrDefault returns the string value or the default when nil.
func GetStringOrDefault(s *string, defaultValue string) string {
	if s == nil {
		return defaultValue
	}
	return *s
}

// GetTimeOrEmpty returns the time value or the zero time when nil.
func GetTimeOrEmpty(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// FormatTimePtrToString renders a nullable time as RFC3339, "" when nil.
func FormatTimePtrToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

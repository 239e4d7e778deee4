// Package domain holds the entities of the task tracker and the business
// rules they enforce themselves. A broken entity rule is reported as a
// *RuleViolation; handlers translate those into validation failures while
// every other error keeps propagating as an infrastructure fault.
package domain

import "fmt"

// RuleViolation reports that an entity-level invariant was broken. The
// message is safe to show to end users.
type RuleViolation struct {
	Field   string
	Message string
}

func (v *RuleViolation) Error() string {
	return v.Message
}

func violation(field, format string, args ...any) *RuleViolation {
	return &RuleViolation{Field: field, Message: fmt.Sprintf(format, args...)}
}

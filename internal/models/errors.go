package models

import "fmt"

// Validation rule identifiers reported by ticker validation.
const (
	ValidationRuleEmpty     = "empty"
	ValidationRuleCharacter = "invalid-character"
	ValidationRuleLength    = "length"
)

// ValidationError reports a malformed ticker. It is returned before any
// cache or network activity occurs.
type ValidationError struct {
	Rule   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid ticker (%s): %s", e.Rule, e.Reason)
}

// UpstreamErrorKind classifies failures at the external fetch boundary.
type UpstreamErrorKind string

const (
	UpstreamNetwork   UpstreamErrorKind = "network"
	UpstreamStatus    UpstreamErrorKind = "status"
	UpstreamMalformed UpstreamErrorKind = "malformed"
)

// UpstreamError wraps a failure from an upstream API call. The orchestrator
// catches these and degrades to empty metrics rather than propagating.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case UpstreamStatus:
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	case UpstreamMalformed:
		if e.Err != nil {
			return fmt.Sprintf("upstream response malformed: %v", e.Err)
		}
		return "upstream response malformed"
	default:
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

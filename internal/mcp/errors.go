package mcp

import "fmt"

// DuplicateToolError indicates a tool name was registered twice.
// It is a startup configuration error.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q is already registered", e.Name)
}

// InvalidParameterError indicates a tool was declared with an invalid
// parameter list or handler.
type InvalidParameterError struct {
	Tool string
	Err  error
}

func (e *InvalidParameterError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("invalid tool declaration: %v", e.Err)
	}

	return fmt.Sprintf("invalid declaration of tool %q: %v", e.Tool, e.Err)
}

func (e *InvalidParameterError) Unwrap() error {
	return e.Err
}

// ValidationReason classifies a ValidationError.
type ValidationReason string

// Validation reasons.
const (
	ReasonMissing   ValidationReason = "missing"
	ReasonMismatch  ValidationReason = "mismatch"
	ReasonMalformed ValidationReason = "malformed"
)

// ValidationError reports an argument bag that does not satisfy a tool's
// declared parameters.
type ValidationError struct {
	Tool     string
	Param    string
	Expected Kind
	Reason   ValidationReason
	Err      error
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissing:
		return fmt.Sprintf("missing required parameter %q", e.Param)
	case ReasonMalformed:
		return fmt.Sprintf("malformed arguments: %v", e.Err)
	default:
		return fmt.Sprintf("parameter %q expects %s: %v", e.Param, e.Expected, e.Err)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

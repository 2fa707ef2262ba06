// Package errors defines error types for the toolkit.
//
// This package provides structured error types that wrap the failure
// scenarios of locating, connecting to, and calling a tool server. All error
// types support error unwrapping and can be checked using errors.Is,
// errors.As, and errors.AsType.
package errors

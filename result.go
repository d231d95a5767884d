package schemac

import (
	"fmt"
	"strings"
)

// EvaluationError describes a single keyword failure produced by a Validator.
// It carries enough context to build both a short message (Error) and a
// longer one that includes the offending location (LongError), following
// the same short/long split as the rest of this package's error types.
type EvaluationError struct {
	Keyword          string
	Message          string
	SchemaLocation   string
	InstanceLocation string
}

func (e *EvaluationError) Error() string { return e.Message }

func (e *EvaluationError) LongError() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.InstanceLocation != "" {
		b.WriteString(" at instance ")
		b.WriteString(e.InstanceLocation)
	}
	if e.SchemaLocation != "" {
		b.WriteString(" (schema ")
		b.WriteString(e.SchemaLocation)
		b.WriteString(")")
	}
	return b.String()
}

func newEvalError(keyword, instanceLoc, schemaLoc, format string, args ...any) *EvaluationError {
	return &EvaluationError{
		Keyword:          keyword,
		Message:          fmt.Sprintf(format, args...),
		SchemaLocation:   schemaLoc,
		InstanceLocation: instanceLoc,
	}
}

// ValidationError aggregates every EvaluationError produced while validating
// one instance against one schema. A nil *ValidationError means the instance
// is valid; Validator implementations should return it as an error interface
// value only when Errors is non-empty.
type ValidationError struct {
	Errors []*EvaluationError
}

func (v *ValidationError) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	if len(v.Errors) == 1 {
		return v.Errors[0].Error()
	}
	var b strings.Builder
	b.WriteString(v.Errors[0].Error())
	for _, e := range v.Errors[1:] {
		b.WriteString("; ")
		b.WriteString(e.Error())
	}
	return b.String()
}

func (v *ValidationError) add(err *EvaluationError) {
	v.Errors = append(v.Errors, err)
}

func (v *ValidationError) isEmpty() bool { return len(v.Errors) == 0 }

package schemac

import "unicode/utf8"

// evaluateMinLength checks that a string instance's rune count is at least
// rec.MinLength.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minlength
func evaluateMinLength(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if rec.MinLength == nil {
		return nil
	}
	str, ok := instance.(string)
	if !ok {
		return nil
	}
	if length := utf8.RuneCountInString(str); length < *rec.MinLength {
		return newEvalError("minLength", instanceLoc, rec.Location,
			"value should be at least %d characters, got %d", *rec.MinLength, length)
	}
	return nil
}

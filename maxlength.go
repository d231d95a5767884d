package schemac

import "unicode/utf8"

// evaluateMaxLength checks that a string instance's rune count does not
// exceed rec.MaxLength.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxlength
func evaluateMaxLength(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if rec.MaxLength == nil {
		return nil
	}
	str, ok := instance.(string)
	if !ok {
		return nil
	}
	if length := utf8.RuneCountInString(str); length > *rec.MaxLength {
		return newEvalError("maxLength", instanceLoc, rec.Location,
			"value should be at most %d characters, got %d", *rec.MaxLength, length)
	}
	return nil
}

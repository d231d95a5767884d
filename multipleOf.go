package schemac

import "math/big"

// evaluateMultipleOf checks that a numeric instance divides rec.MultipleOf
// with no remainder.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-multipleof
func evaluateMultipleOf(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if rec.MultipleOf == nil {
		return nil
	}
	value := NewRat(instance)
	if value == nil {
		return nil
	}

	quotient := new(big.Rat).Quo(value.Rat, rec.MultipleOf.Rat)
	if !quotient.IsInt() {
		return newEvalError("multipleOf", instanceLoc, rec.Location,
			"%s should be a multiple of %s", FormatRat(value), FormatRat(rec.MultipleOf))
	}
	return nil
}

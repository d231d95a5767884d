package schemac

import "reflect"

// evaluateEnum checks the instance against rec.Enum, the set of values the
// keyword's value enumerates.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-enum
func evaluateEnum(rec *Record, instance any) *EvaluationError {
	if !rec.HasEnum {
		return nil
	}

	for _, want := range rec.Enum {
		if reflect.DeepEqual(instance, want) {
			return nil
		}
	}

	return newEvalError("enum", "", rec.Location, "value does not match any of the enumerated values")
}

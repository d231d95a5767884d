package schemac

import "strings"

// evaluateType checks the instance's JSON type against rec.Types, treating
// "integer" as a stricter "number" per the validation vocabulary.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-type
func evaluateType(rec *Record, instance any) *EvaluationError {
	if len(rec.Types) == 0 {
		return nil
	}

	instanceType := getDataType(instance)
	for _, want := range rec.Types {
		if want == "number" && instanceType == "integer" {
			return nil
		}
		if instanceType == want {
			return nil
		}
	}

	return newEvalError("type", "", rec.Location,
		"value is %s but should be %s", instanceType, strings.Join(rec.Types, " or "))
}

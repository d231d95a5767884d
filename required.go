package schemac

import "strings"

// evaluateRequired checks that every name in rec.Required is present in an
// object instance.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-required
func evaluateRequired(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if len(rec.Required) == 0 {
		return nil
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	var missing []string
	for _, name := range rec.Required {
		if _, exists := object[name]; !exists {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return newEvalError("required", instanceLoc, rec.Location,
		"missing required properties: %s", strings.Join(missing, ", "))
}

package schemac

// evaluateMaxProperties checks that an object instance has at most
// rec.MaxProperties properties.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxproperties
func evaluateMaxProperties(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if rec.MaxProperties == nil {
		return nil
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}
	if len(object) > *rec.MaxProperties {
		return newEvalError("maxProperties", instanceLoc, rec.Location,
			"value should have at most %d properties, got %d", *rec.MaxProperties, len(object))
	}
	return nil
}

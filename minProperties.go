package schemac

// evaluateMinProperties checks that an object instance has at least
// rec.MinProperties properties.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minproperties
func evaluateMinProperties(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if rec.MinProperties == nil {
		return nil
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return nil
	}
	if len(object) < *rec.MinProperties {
		return newEvalError("minProperties", instanceLoc, rec.Location,
			"value should have at least %d properties, got %d", *rec.MinProperties, len(object))
	}
	return nil
}

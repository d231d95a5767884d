package schemac

// evaluateMinItems checks that an array instance has at least rec.MinItems
// elements.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-minitems
func evaluateMinItems(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if rec.MinItems == nil {
		return nil
	}
	array, ok := instance.([]any)
	if !ok {
		return nil
	}
	if len(array) < *rec.MinItems {
		return newEvalError("minItems", instanceLoc, rec.Location,
			"value should have at least %d items, got %d", *rec.MinItems, len(array))
	}
	return nil
}

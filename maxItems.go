package schemac

// evaluateMaxItems checks that an array instance has at most rec.MaxItems
// elements.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-maxitems
func evaluateMaxItems(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if rec.MaxItems == nil {
		return nil
	}
	array, ok := instance.([]any)
	if !ok {
		return nil
	}
	if len(array) > *rec.MaxItems {
		return newEvalError("maxItems", instanceLoc, rec.Location,
			"value should have at most %d items, got %d", *rec.MaxItems, len(array))
	}
	return nil
}

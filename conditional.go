package schemac

// evaluateConditional implements if/then/else: evaluating rec.If first, then
// rec.Then on success or rec.Else on failure, merging the evaluated branch's
// properties/items into the caller's.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-if
func (v *refValidator) evaluateConditional(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool, evaluatedItems map[int]bool) {
	if !rec.IfIsSet {
		return
	}

	ifResult := &ValidationError{}
	ifProps, ifItems := v.evalHandle(rec.If, instanceLoc, instance, ifResult, st)

	if ifResult.isEmpty() {
		mergeStringMaps(evaluatedProps, ifProps)
		mergeIntMaps(evaluatedItems, ifItems)

		if !rec.ThenIsSet {
			return
		}
		sub := &ValidationError{}
		props, items := v.evalHandle(rec.Then, instanceLoc, instance, sub, st)
		if !sub.isEmpty() {
			ve.add(newEvalError("then", instanceLoc, rec.Location,
				"value meets the if condition but does not match the then schema"))
			return
		}
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
		return
	}

	if !rec.ElseIsSet {
		return
	}
	sub := &ValidationError{}
	props, items := v.evalHandle(rec.Else, instanceLoc, instance, sub, st)
	if !sub.isEmpty() {
		ve.add(newEvalError("else", instanceLoc, rec.Location,
			"value fails the if condition and does not match the else schema"))
		return
	}
	mergeStringMaps(evaluatedProps, props)
	mergeIntMaps(evaluatedItems, items)
}

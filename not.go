package schemac

// evaluateNot checks that the instance does NOT match rec.Not. Annotations
// produced inside the Not branch are not propagated to the caller.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-not
func (v *refValidator) evaluateNot(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope) {
	if !rec.NotIsSet {
		return
	}

	sub := &ValidationError{}
	v.evalHandle(rec.Not, instanceLoc, instance, sub, st)
	if sub.isEmpty() {
		ve.add(newEvalError("not", instanceLoc, rec.Location, "value should not match the not schema"))
	}
}

package schemac

import "strconv"

// evaluateContains checks that at least minContains (default 1) and at most
// maxContains array elements validate against rec.Contains, marking matching
// indices as evaluated.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-contains
func (v *refValidator) evaluateContains(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedItems map[int]bool) {
	if !rec.ContainsIsSet {
		return
	}
	array, ok := instance.([]any)
	if !ok {
		return
	}

	var matched int
	for i, item := range array {
		sub := &ValidationError{}
		v.evalHandle(rec.Contains, instancePtr(instanceLoc, strconv.Itoa(i)), item, sub, st)
		if sub.isEmpty() {
			matched++
			evaluatedItems[i] = true
		}
	}

	minContains := 1
	if rec.MinContains != nil {
		minContains = *rec.MinContains
	}
	if matched < minContains {
		ve.add(newEvalError("contains", instanceLoc, rec.Location,
			"array should contain at least %d matching items, found %d", minContains, matched))
		return
	}

	if rec.MaxContains != nil && matched > *rec.MaxContains {
		ve.add(newEvalError("contains", instanceLoc, rec.Location,
			"array should contain at most %d matching items, found %d", *rec.MaxContains, matched))
	}
}

package schemac

import (
	"strconv"
	"strings"
)

// evaluateUnevaluatedItems validates every array index not already marked in
// evaluatedItems against rec.UnevaluatedItems, relying on evalHandle's own
// boolean short-circuit to implement the true/false forms.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluateditems
func (v *refValidator) evaluateUnevaluatedItems(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedItems map[int]bool) {
	if !rec.UnevaluatedItemsIsSet {
		return
	}
	array, ok := instance.([]any)
	if !ok {
		return
	}

	var invalid []string
	for i, item := range array {
		if evaluatedItems[i] {
			continue
		}
		sub := &ValidationError{}
		v.evalHandle(rec.UnevaluatedItems, instancePtr(instanceLoc, strconv.Itoa(i)), item, sub, st)
		if sub.isEmpty() {
			evaluatedItems[i] = true
		} else {
			invalid = append(invalid, strconv.Itoa(i))
		}
	}

	if len(invalid) == 0 {
		return
	}
	ve.add(newEvalError("unevaluatedItems", instanceLoc, rec.Location,
		"unevaluated items at index %s do not match the schema", strings.Join(invalid, ", ")))
}

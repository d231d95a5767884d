package schemac

import (
	"strconv"
	"strings"
)

// evaluateAllOf checks the instance against every rec.AllOf subschema,
// merging each branch's evaluated properties/items into the caller's.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-allof
func (v *refValidator) evaluateAllOf(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool, evaluatedItems map[int]bool) {
	if len(rec.AllOf) == 0 {
		return
	}

	var invalid []string
	for i, branch := range rec.AllOf {
		sub := &ValidationError{}
		props, items := v.evalHandle(branch, instanceLoc, instance, sub, st)
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
		if !sub.isEmpty() {
			invalid = append(invalid, strconv.Itoa(i))
		}
	}

	if len(invalid) == 0 {
		return
	}
	ve.add(newEvalError("allOf", instanceLoc, rec.Location,
		"value does not match the allOf schema at index %s", strings.Join(invalid, ", ")))
}

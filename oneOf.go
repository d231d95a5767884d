package schemac

import (
	"strconv"
	"strings"
)

// evaluateOneOf checks the instance against rec.OneOf subschemas, requiring
// exactly one match, and merges the evaluated properties/items of that one
// matching branch.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-oneof
func (v *refValidator) evaluateOneOf(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool, evaluatedItems map[int]bool) {
	if len(rec.OneOf) == 0 {
		return
	}

	var matched []string
	var matchedProps map[string]bool
	var matchedItems map[int]bool

	for i, branch := range rec.OneOf {
		sub := &ValidationError{}
		props, items := v.evalHandle(branch, instanceLoc, instance, sub, st)
		if sub.isEmpty() {
			matched = append(matched, strconv.Itoa(i))
			matchedProps, matchedItems = props, items
		}
	}

	switch len(matched) {
	case 1:
		mergeStringMaps(evaluatedProps, matchedProps)
		mergeIntMaps(evaluatedItems, matchedItems)
	case 0:
		ve.add(newEvalError("oneOf", instanceLoc, rec.Location, "value does not match any of the oneOf schemas"))
	default:
		ve.add(newEvalError("oneOf", instanceLoc, rec.Location,
			"value matches more than one oneOf schema at indexes %s", strings.Join(matched, ", ")))
	}
}

package schemac

import (
	"slices"
	"strings"
)

// evaluatePropertyNames validates every property name of an object instance,
// treated as a string instance in its own right, against rec.PropertyNames.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-propertynames
func (v *refValidator) evaluatePropertyNames(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope) {
	if !rec.PropertyNamesIsSet {
		return
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return
	}

	var invalid []string
	for propName := range object {
		sub := &ValidationError{}
		v.evalHandle(rec.PropertyNames, instancePtr(instanceLoc, propName), propName, sub, st)
		if !sub.isEmpty() {
			invalid = append(invalid, propName)
		}
	}

	if len(invalid) == 0 {
		return
	}
	slices.Sort(invalid)
	ve.add(newEvalError("propertyNames", instanceLoc, rec.Location,
		"property names do not match the schema: %s", strings.Join(invalid, ", ")))
}

package schemac

import (
	"slices"
	"strings"
)

// evaluateUnevaluatedProperties validates every object property not already
// marked in evaluatedProps against rec.UnevaluatedProperties, relying on
// evalHandle's own boolean short-circuit to implement the true/false forms.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluatedproperties
func (v *refValidator) evaluateUnevaluatedProperties(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool) {
	if !rec.UnevaluatedPropertiesIsSet {
		return
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return
	}

	var invalid []string
	for propName, propValue := range object {
		if evaluatedProps[propName] {
			continue
		}
		sub := &ValidationError{}
		v.evalHandle(rec.UnevaluatedProperties, instancePtr(instanceLoc, propName), propValue, sub, st)
		if sub.isEmpty() {
			evaluatedProps[propName] = true
		} else {
			invalid = append(invalid, propName)
		}
	}

	if len(invalid) == 0 {
		return
	}
	slices.Sort(invalid)
	ve.add(newEvalError("unevaluatedProperties", instanceLoc, rec.Location,
		"unevaluated properties do not match the schema: %s", strings.Join(invalid, ", ")))
}

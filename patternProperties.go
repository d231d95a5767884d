package schemac

import (
	"slices"
	"strings"
)

// evaluatePatternProperties validates every instance property whose name
// matches a rec.PatternProperties regex against that pattern's subschema.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-patternproperties
func (v *refValidator) evaluatePatternProperties(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool) {
	if len(rec.PatternProperties) == 0 {
		return
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return
	}

	var invalid []string
	for _, pp := range rec.PatternProperties {
		for propName, propValue := range object {
			if !pp.Pattern.MatchString(propName) {
				continue
			}
			evaluatedProps[propName] = true
			sub := &ValidationError{}
			v.evalHandle(pp.Schema, instancePtr(instanceLoc, propName), propValue, sub, st)
			if !sub.isEmpty() && !slices.Contains(invalid, propName) {
				invalid = append(invalid, propName)
			}
		}
	}

	if len(invalid) == 0 {
		return
	}
	slices.Sort(invalid)
	ve.add(newEvalError("patternProperties", instanceLoc, rec.Location,
		"properties do not match their pattern schemas: %s", strings.Join(invalid, ", ")))
}

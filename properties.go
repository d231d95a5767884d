package schemac

import (
	"slices"
	"strings"
)

// evaluateProperties validates each instance property named in
// rec.Properties against its subschema, marking every declared name as
// evaluated whether or not the instance actually has it.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-properties
func (v *refValidator) evaluateProperties(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool) {
	if len(rec.Properties) == 0 {
		return
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return
	}

	var invalid []string
	for propName, propHandle := range rec.Properties {
		evaluatedProps[propName] = true
		propValue, exists := object[propName]
		if !exists {
			continue
		}
		sub := &ValidationError{}
		v.evalHandle(propHandle, instancePtr(instanceLoc, propName), propValue, sub, st)
		if !sub.isEmpty() {
			invalid = append(invalid, propName)
		}
	}

	if len(invalid) == 0 {
		return
	}
	slices.Sort(invalid)
	ve.add(newEvalError("properties", instanceLoc, rec.Location,
		"properties do not match their schemas: %s", strings.Join(invalid, ", ")))
}

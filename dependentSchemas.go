package schemac

import "strings"

// evaluateDependentSchemas validates the whole instance against each
// rec.DependentSchemas entry whose trigger property is present, merging its
// evaluatedProps into the caller's on success.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-dependentschemas
func (v *refValidator) evaluateDependentSchemas(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool) {
	if len(rec.DependentSchemas) == 0 {
		return
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return
	}

	var invalid []string
	for propName, depHandle := range rec.DependentSchemas {
		if _, exists := object[propName]; !exists {
			continue
		}
		sub := &ValidationError{}
		props, _ := v.evalHandle(depHandle, instanceLoc, instance, sub, st)
		if sub.isEmpty() {
			mergeStringMaps(evaluatedProps, props)
		} else {
			invalid = append(invalid, propName)
		}
	}

	if len(invalid) > 0 {
		ve.add(newEvalError("dependentSchemas", instanceLoc, rec.Location,
			"instance does not satisfy the schema dependent on properties %s", strings.Join(invalid, ", ")))
	}
}

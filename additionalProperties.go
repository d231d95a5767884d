package schemac

import (
	"slices"
	"strings"
)

// evaluateAdditionalProperties validates every instance property not named in
// rec.Properties and not matched by any rec.PatternProperties regex, against
// rec.AdditionalProperties. Matched properties are marked evaluated only when
// the keyword is actually present in the schema.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-additionalproperties
func (v *refValidator) evaluateAdditionalProperties(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedProps map[string]bool) {
	if !rec.AdditionalPropertiesIsSet {
		return
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return
	}

	declared := func(propName string) bool {
		if _, ok := rec.Properties[propName]; ok {
			return true
		}
		for _, pp := range rec.PatternProperties {
			if pp.Pattern.MatchString(propName) {
				return true
			}
		}
		return false
	}

	var invalid []string
	for propName, propValue := range object {
		if declared(propName) {
			continue
		}
		evaluatedProps[propName] = true

		if rec.AdditionalPropertiesIsBool {
			if !rec.AdditionalPropertiesBool {
				invalid = append(invalid, propName)
			}
			continue
		}

		sub := &ValidationError{}
		v.evalHandle(rec.AdditionalProperties, instancePtr(instanceLoc, propName), propValue, sub, st)
		if !sub.isEmpty() {
			invalid = append(invalid, propName)
		}
	}

	if len(invalid) == 0 {
		return
	}
	slices.Sort(invalid)
	ve.add(newEvalError("additionalProperties", instanceLoc, rec.Location,
		"additional properties do not match the schema: %s", strings.Join(invalid, ", ")))
}

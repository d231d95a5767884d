package schemac

import "strings"

// evaluateDependencies implements the draft 4/6/7 "dependencies" keyword and
// the 2019-09+ "dependentRequired" keyword, both lowered into
// rec.Dependencies, where each entry is either a sibling-property list or a
// whole-schema dependency.
//
// Reference: https://json-schema.org/draft-07/json-schema-release-notes#dependencies
func (v *refValidator) evaluateDependencies(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope) {
	if len(rec.Dependencies) == 0 {
		return
	}
	object, ok := instance.(map[string]any)
	if !ok {
		return
	}

	var missingFor []string
	for trigger, dep := range rec.Dependencies {
		if _, present := object[trigger]; !present {
			continue
		}

		if dep.Schema != noHandle {
			sub := &ValidationError{}
			v.evalHandle(dep.Schema, instanceLoc, instance, sub, st)
			if !sub.isEmpty() {
				ve.add(newEvalError("dependencies", instanceLoc, rec.Location,
					"instance does not satisfy the schema required by property %q", trigger))
			}
			continue
		}

		var missing []string
		for _, reqProp := range dep.Props {
			if _, exists := object[reqProp]; !exists {
				missing = append(missing, reqProp)
			}
		}
		if len(missing) > 0 {
			missingFor = append(missingFor, trigger+": "+strings.Join(missing, ", "))
		}
	}

	if len(missingFor) > 0 {
		ve.add(newEvalError("dependentRequired", instanceLoc, rec.Location,
			"missing dependent required properties (%s)", strings.Join(missingFor, "; ")))
	}
}

package schemac

import (
	"strconv"
	"strings"
)

// evaluateItems validates array elements against the tuple/positional item
// schemas, covering both the 2020-12 form (rec.PrefixItems + uniform
// rec.Items for the remainder) and the draft<2020 form (rec.ItemsTuple, with
// rec.AdditionalItems validating any overflow beyond the tuple).
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-items
func (v *refValidator) evaluateItems(rec *Record, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope, evaluatedItems map[int]bool) {
	array, ok := instance.([]any)
	if !ok {
		return
	}

	var invalid []string

	validateAt := func(handle Handle, index int) {
		sub := &ValidationError{}
		v.evalHandle(handle, instancePtr(instanceLoc, strconv.Itoa(index)), array[index], sub, st)
		if sub.isEmpty() {
			evaluatedItems[index] = true
		} else {
			invalid = append(invalid, strconv.Itoa(index))
		}
	}

	if len(rec.ItemsTuple) > 0 {
		for i, itemSchema := range rec.ItemsTuple {
			if i >= len(array) {
				break
			}
			validateAt(itemSchema, i)
		}
		if rec.AdditionalItemsIsSet {
			for i := len(rec.ItemsTuple); i < len(array); i++ {
				if rec.AdditionalItemsIsBool {
					evaluatedItems[i] = true
					if !rec.AdditionalItemsBool {
						invalid = append(invalid, strconv.Itoa(i))
					}
					continue
				}
				validateAt(rec.AdditionalItems, i)
			}
		}
	} else if rec.ItemsIsSet {
		for i, schemaHandle := range rec.PrefixItems {
			if i >= len(array) {
				break
			}
			validateAt(schemaHandle, i)
		}
		for i := len(rec.PrefixItems); i < len(array); i++ {
			validateAt(rec.Items, i)
		}
	} else {
		for i, schemaHandle := range rec.PrefixItems {
			if i >= len(array) {
				break
			}
			validateAt(schemaHandle, i)
		}
	}

	if len(invalid) == 0 {
		return
	}
	ve.add(newEvalError("items", instanceLoc, rec.Location,
		"items at index %s do not match the schema", strings.Join(invalid, ", ")))
}

package schemac

import "reflect"

// evaluateConst checks the instance for exact equality with rec.Const.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-const
func evaluateConst(rec *Record, instance any) *EvaluationError {
	if !rec.HasConst {
		return nil
	}

	if !reflect.DeepEqual(instance, rec.Const) {
		return newEvalError("const", "", rec.Location, "value does not match the constant value")
	}
	return nil
}

package schemac

import (
	"math/big"
	"reflect"

	"github.com/go-json-experiment/json"
)

// mergeIntMaps merges map2 into map1 in place and returns map1, used to fold
// a nested evaluate call's evaluatedItems back into its caller's.
func mergeIntMaps(map1, map2 map[int]bool) map[int]bool {
	for key, value := range map2 {
		map1[key] = value
	}
	return map1
}

// mergeStringMaps merges map2 into map1 in place and returns map1, used to
// fold a nested evaluate call's evaluatedProps back into its caller's.
func mergeStringMaps(map1, map2 map[string]bool) map[string]bool {
	for key, value := range map2 {
		map1[key] = value
	}
	return map1
}

// instancePtr appends an (escaped) JSON Pointer token to an instance
// location for error reporting, mirroring childLocation's escaping rules
// but operating on the bare instance pointer rather than a canonical
// "<url>#<pointer>" schema location.
func instancePtr(loc, token string) string {
	return loc + "/" + escapeToken(token)
}

// getDataType identifies the JSON Schema type name for a decoded Go value.
func getDataType(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.RawValue:
		return "unknown"
	case float64:
		if bigFloat := new(big.Float).SetFloat64(v); true {
			if _, acc := bigFloat.Int(nil); acc == big.Exact {
				return "integer"
			}
			return "number"
		}
		return "number"
	case float32:
		return getDataType(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			return "array"
		case reflect.Map, reflect.Struct:
			return "object"
		}
		return "unknown"
	}
}

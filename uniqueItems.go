package schemac

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
)

// evaluateUniqueItems checks that every element of an array instance is
// distinct, when rec.UniqueItems is set.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-uniqueitems
func evaluateUniqueItems(rec *Record, instanceLoc string, instance any) *EvaluationError {
	if !rec.UniqueItems {
		return nil
	}
	array, ok := instance.([]any)
	if !ok || len(array) == 0 {
		return nil
	}

	seen := make(map[string][]int)
	for index, item := range array {
		seen[normalizeValue(item)] = append(seen[normalizeValue(item)], index)
	}

	var duplicates []string
	for _, indices := range seen {
		if len(indices) > 1 {
			shown := make([]string, len(indices))
			for i, idx := range indices {
				shown[i] = fmt.Sprint(idx)
			}
			duplicates = append(duplicates, "("+strings.Join(shown, ", ")+")")
		}
	}

	if len(duplicates) > 0 {
		return newEvalError("uniqueItems", instanceLoc, rec.Location,
			"found duplicate items at indexes %s", strings.Join(duplicates, ", "))
	}
	return nil
}

// normalizeValue builds a canonical string representation of a decoded JSON
// value for uniqueness comparison, so objects with the same key/value pairs
// in a different property order still compare equal.
func normalizeValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(fmt.Sprintf("%q:", k))
			sb.WriteString(normalizeValue(v[k]))
		}
		sb.WriteByte('}')
		return sb.String()
	case []any:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(normalizeValue(elem))
		}
		sb.WriteByte(']')
		return sb.String()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		var pairs []string
		for _, key := range keys {
			pairs = append(pairs, fmt.Sprintf("%s:%s", normalizeValue(key.Interface()), normalizeValue(rv.MapIndex(key).Interface())))
		}
		return "{" + strings.Join(pairs, ",") + "}"
	default:
		bytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(bytes)
	}
}

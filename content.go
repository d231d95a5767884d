package schemac

import (
	"encoding/base32"
	"encoding/base64"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/goccy/go-yaml"
)

// DecodeFunc turns a contentEncoding-encoded string back into raw bytes
// (e.g. base64 -> decoded payload), installed via RegisterDecoder.
type DecodeFunc func(string) ([]byte, error)

// MediaTypeFunc turns a contentMediaType's raw bytes into a decoded value,
// so contentSchema (draft 7+) has something to validate, installed via
// RegisterMediaType.
type MediaTypeFunc func([]byte) (any, error)

var defaultDecodersTable = defaultDecoders()
var defaultMediaTypesTable = defaultMediaTypes()

func defaultDecoders() map[string]DecodeFunc {
	return map[string]DecodeFunc{
		"base64":    base64.StdEncoding.DecodeString,
		"base64url": base64.URLEncoding.DecodeString,
		"base32":    base32.StdEncoding.DecodeString,
	}
}

func defaultMediaTypes() map[string]MediaTypeFunc {
	return map[string]MediaTypeFunc{
		"application/json": func(data []byte) (any, error) {
			var v any
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
		"application/yaml": func(data []byte) (any, error) {
			var v any
			if err := yaml.Unmarshal(data, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

// decodeJSONOrYAML decodes a loaded document's raw bytes. JSON Schema
// documents are ordinarily JSON; this compiler additionally accepts YAML
// (via the same goccy/go-yaml library the "application/yaml" media type
// above uses) so a schema a Loader returns as YAML compiles without a
// separate preprocessing step. Compiler.AddResource takes an already-decoded
// value and does not go through this function.
func decodeJSONOrYAML(data []byte) (any, error) {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"') {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// evaluateContent implements the draft 7+ contentEncoding/contentMediaType/
// contentSchema trio for the reference Validator. It mirrors the teacher's
// evaluateContent (same decode -> unmarshal -> validate pipeline), adapted
// to the Arena/Handle model: the content schema is validated by recursing
// into v.validateHandle rather than calling a method on a pointer tree.
func evaluateContent(v *refValidator, rec *Record, instanceLoc string, data any) *EvaluationError {
	str, ok := data.(string)
	if !ok {
		return nil
	}

	content := []byte(str)
	if rec.ContentEncoding != "" {
		decode, exists := v.decoders[rec.ContentEncoding]
		if !exists {
			return newEvalError("contentEncoding", instanceLoc, rec.Location,
				"unsupported content encoding %q", rec.ContentEncoding)
		}
		decoded, err := decode(str)
		if err != nil {
			return newEvalError("contentEncoding", instanceLoc, rec.Location,
				"error decoding %q content: %v", rec.ContentEncoding, err)
		}
		content = decoded
	}

	var parsed any = content
	if rec.ContentMediaType != "" {
		unmarshal, exists := v.mediaTypes[rec.ContentMediaType]
		if !exists {
			return newEvalError("contentMediaType", instanceLoc, rec.Location,
				"unsupported media type %q", rec.ContentMediaType)
		}
		decoded, err := unmarshal(content)
		if err != nil {
			return newEvalError("contentMediaType", instanceLoc, rec.Location,
				"error unmarshalling %q content: %v", rec.ContentMediaType, err)
		}
		parsed = decoded
	}

	if rec.ContentSchemaIsSet {
		if err := v.validateHandle(rec.ContentSchema, instanceLoc, parsed); err != nil {
			return newEvalError("contentSchema", instanceLoc, rec.Location, "content does not match contentSchema")
		}
	}
	return nil
}

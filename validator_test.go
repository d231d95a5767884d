package schemac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, raw string) any {
	t.Helper()
	v, err := decodeJSONOrYAML([]byte(raw))
	require.NoError(t, err)
	return v
}

// compileSchema registers schemaJSON under a unique in-memory URL and
// compiles it into a fresh Arena, returning the Arena and the Handle of its
// root Record.
func compileSchema(t *testing.T, schemaJSON string) (*Arena, Handle) {
	t.Helper()
	url := "mem://" + t.Name() + ".json"
	c := NewCompiler()
	_, err := c.AddResource(url, mustDecode(t, schemaJSON))
	require.NoError(t, err, "AddResource")

	arena := NewArena()
	h, err := c.Compile(arena, url)
	require.NoError(t, err, "Compile")
	return arena, h
}

func validateJSON(t *testing.T, arena *Arena, h Handle, instanceJSON string) error {
	t.Helper()
	v := NewReferenceValidator()
	return v.Validate(arena, h, mustDecode(t, instanceJSON))
}

func TestEvaluateTypeAndEnumConst(t *testing.T) {
	arena, h := compileSchema(t, `{
		"type": "string",
		"enum": ["red", "green", "blue"]
	}`)

	require.NoError(t, validateJSON(t, arena, h, `"red"`))
	assert.Error(t, validateJSON(t, arena, h, `"purple"`))
	assert.Error(t, validateJSON(t, arena, h, `42`))

	arena, h = compileSchema(t, `{"const": 7}`)
	require.NoError(t, validateJSON(t, arena, h, `7`))
	assert.Error(t, validateJSON(t, arena, h, `8`))
}

func TestEvaluateNumericBounds(t *testing.T) {
	arena, h := compileSchema(t, `{
		"minimum": 0,
		"maximum": 10,
		"exclusiveMinimum": -1,
		"multipleOf": 2
	}`)

	for _, tt := range []struct {
		value string
		valid bool
	}{
		{"4", true},
		{"0", true},
		{"10", true},
		{"11", false},
		{"3", false},
		{"-1", false},
	} {
		err := validateJSON(t, arena, h, tt.value)
		if tt.valid {
			assert.NoErrorf(t, err, "value %s should be valid", tt.value)
		} else {
			assert.Errorf(t, err, "value %s should be invalid", tt.value)
		}
	}

	// Non-numeric instances defer to type/enum, never panic here.
	require.NoError(t, validateJSON(t, arena, h, `"not a number"`))
}

func TestEvaluateStringKeywords(t *testing.T) {
	arena, h := compileSchema(t, `{
		"minLength": 2,
		"maxLength": 5,
		"pattern": "^[a-z]+$"
	}`)

	require.NoError(t, validateJSON(t, arena, h, `"abc"`))
	assert.Error(t, validateJSON(t, arena, h, `"a"`))
	assert.Error(t, validateJSON(t, arena, h, `"abcdef"`))
	assert.Error(t, validateJSON(t, arena, h, `"ABC"`))
}

func TestEvaluateArrayKeywords(t *testing.T) {
	arena, h := compileSchema(t, `{
		"type": "array",
		"minItems": 1,
		"maxItems": 3,
		"uniqueItems": true,
		"items": {"type": "integer"}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `[1, 2, 3]`))
	assert.Error(t, validateJSON(t, arena, h, `[]`))
	assert.Error(t, validateJSON(t, arena, h, `[1, 2, 3, 4]`))
	assert.Error(t, validateJSON(t, arena, h, `[1, 1]`))
	assert.Error(t, validateJSON(t, arena, h, `[1, "two"]`))
}

func TestEvaluatePrefixItemsAndItems2020(t *testing.T) {
	arena, h := compileSchema(t, `{
		"prefixItems": [{"type": "string"}, {"type": "integer"}],
		"items": {"type": "boolean"}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `["a", 1, true, false]`))
	assert.Error(t, validateJSON(t, arena, h, `[1, 1, true]`))
	assert.Error(t, validateJSON(t, arena, h, `["a", 1, "not bool"]`))
	require.NoError(t, validateJSON(t, arena, h, `["a", 1]`))
}

func TestEvaluateDraft4StyleItemsTuple(t *testing.T) {
	arena, h := compileSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"items": [{"type": "string"}, {"type": "integer"}],
		"additionalItems": false
	}`)

	require.NoError(t, validateJSON(t, arena, h, `["a", 1]`))
	assert.Error(t, validateJSON(t, arena, h, `["a", 1, "extra"]`))
}

func TestEvaluateContains(t *testing.T) {
	arena, h := compileSchema(t, `{
		"contains": {"type": "integer", "minimum": 10},
		"minContains": 2,
		"maxContains": 3
	}`)

	require.NoError(t, validateJSON(t, arena, h, `[1, 10, 20]`))
	assert.Error(t, validateJSON(t, arena, h, `[1, 10]`))
	assert.Error(t, validateJSON(t, arena, h, `[10, 20, 30, 40]`))
}

func TestEvaluateObjectKeywords(t *testing.T) {
	arena, h := compileSchema(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string"}
		},
		"patternProperties": {
			"^x-": {"type": "boolean"}
		},
		"additionalProperties": false,
		"required": ["name"],
		"minProperties": 1,
		"maxProperties": 3,
		"propertyNames": {"maxLength": 10}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `{"name": "alice", "x-flag": true}`))
	assert.Error(t, validateJSON(t, arena, h, `{}`))
	assert.Error(t, validateJSON(t, arena, h, `{"name": "alice", "extra": 1}`))
	assert.Error(t, validateJSON(t, arena, h, `{"name": "alice", "x-flag": "not a bool"}`))
	assert.Error(t, validateJSON(t, arena, h, `{"this-property-name-is-too-long": "x"}`))
}

func TestEvaluateDependentSchemasAndRequired(t *testing.T) {
	arena, h := compileSchema(t, `{
		"dependentSchemas": {
			"creditCard": {
				"required": ["billingAddress"]
			}
		},
		"dependentRequired": {
			"creditCard": ["cvv"]
		}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `{"creditCard": "1234", "billingAddress": "x", "cvv": "123"}`))
	assert.Error(t, validateJSON(t, arena, h, `{"creditCard": "1234"}`))
	require.NoError(t, validateJSON(t, arena, h, `{"name": "no card here"}`))
}

func TestEvaluateDraft7Dependencies(t *testing.T) {
	arena, h := compileSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"dependencies": {
			"creditCard": ["billingAddress"]
		}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `{"creditCard": "1234", "billingAddress": "x"}`))
	assert.Error(t, validateJSON(t, arena, h, `{"creditCard": "1234"}`))
}

func TestEvaluateComposition(t *testing.T) {
	arena, h := compileSchema(t, `{
		"allOf": [{"type": "integer"}, {"minimum": 0}],
		"anyOf": [{"const": 1}, {"const": 2}, {"const": 3}],
		"oneOf": [{"multipleOf": 2}, {"multipleOf": 3}]
	}`)

	require.NoError(t, validateJSON(t, arena, h, `2`))
	assert.Error(t, validateJSON(t, arena, h, `6`), "matches both oneOf branches")
	assert.Error(t, validateJSON(t, arena, h, `5`), "fails anyOf and oneOf")
	assert.Error(t, validateJSON(t, arena, h, `-2`), "fails allOf minimum")
}

func TestEvaluateNot(t *testing.T) {
	arena, h := compileSchema(t, `{"not": {"type": "string"}}`)

	require.NoError(t, validateJSON(t, arena, h, `42`))
	assert.Error(t, validateJSON(t, arena, h, `"nope"`))
}

func TestEvaluateConditional(t *testing.T) {
	arena, h := compileSchema(t, `{
		"if": {"properties": {"country": {"const": "US"}}},
		"then": {"required": ["zip"]},
		"else": {"required": ["postalCode"]}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `{"country": "US", "zip": "12345"}`))
	assert.Error(t, validateJSON(t, arena, h, `{"country": "US"}`))
	require.NoError(t, validateJSON(t, arena, h, `{"country": "CA", "postalCode": "A1A"}`))
	assert.Error(t, validateJSON(t, arena, h, `{"country": "CA"}`))
}

func TestEvaluateUnevaluatedProperties(t *testing.T) {
	arena, h := compileSchema(t, `{
		"allOf": [{
			"properties": {"name": {"type": "string"}}
		}],
		"unevaluatedProperties": false
	}`)

	require.NoError(t, validateJSON(t, arena, h, `{"name": "alice"}`))
	assert.Error(t, validateJSON(t, arena, h, `{"name": "alice", "extra": true}`))
}

func TestEvaluateUnevaluatedItems(t *testing.T) {
	arena, h := compileSchema(t, `{
		"prefixItems": [{"type": "string"}],
		"unevaluatedItems": false
	}`)

	require.NoError(t, validateJSON(t, arena, h, `["a"]`))
	assert.Error(t, validateJSON(t, arena, h, `["a", "b"]`))
}

func TestEvaluateRefCycleTerminates(t *testing.T) {
	arena, h := compileSchema(t, `{
		"$defs": {
			"node": {
				"type": "object",
				"properties": {
					"next": {"$ref": "#/$defs/node"}
				}
			}
		},
		"$ref": "#/$defs/node"
	}`)

	require.NoError(t, validateJSON(t, arena, h, `{"next": {"next": {}}}`))
	assert.Error(t, validateJSON(t, arena, h, `{"next": {"next": 5}}`))
}

func TestEvaluateUnknownFormatIsTolerated(t *testing.T) {
	arena, h := compileSchema(t, `{"format": "not-a-real-format"}`)
	require.NoError(t, validateJSON(t, arena, h, `"anything"`))
}

func TestEvaluateDraft7BooleanExclusiveBounds(t *testing.T) {
	arena, h := compileSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"minimum": 0,
		"exclusiveMinimum": true,
		"maximum": 10,
		"exclusiveMaximum": true
	}`)

	require.NoError(t, validateJSON(t, arena, h, `5`))
	assert.Error(t, validateJSON(t, arena, h, `0`), "boolean exclusiveMinimum must reject the boundary itself")
	assert.Error(t, validateJSON(t, arena, h, `10`), "boolean exclusiveMaximum must reject the boundary itself")
	require.NoError(t, validateJSON(t, arena, h, `1`))
	require.NoError(t, validateJSON(t, arena, h, `9`))
}

func TestEvaluateDynamicRefAnchor(t *testing.T) {
	arena, h := compileSchema(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"$dynamicAnchor": "node",
		"type": "object",
		"properties": {
			"child": {"$dynamicRef": "#node"}
		}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `{}`))
	require.NoError(t, validateJSON(t, arena, h, `{"child": {"child": {}}}`))
	assert.Error(t, validateJSON(t, arena, h, `{"child": "not an object"}`))
}

func TestAddResourceDuplicateID(t *testing.T) {
	c := NewCompiler()
	_, err := c.AddResource("mem://dup-id.json", mustDecode(t, `{
		"$defs": {
			"a": {"$id": "https://example.com/dup-target"},
			"b": {"$id": "https://example.com/dup-target"}
		}
	}`))
	require.Error(t, err)
	var dupErr *DuplicateIDError
	assert.ErrorAs(t, err, &dupErr)
}

func TestAddResourceDuplicateAnchor(t *testing.T) {
	c := NewCompiler()
	_, err := c.AddResource("mem://dup-anchor.json", mustDecode(t, `{
		"$defs": {
			"a": {"$anchor": "dup"},
			"b": {"$anchor": "dup"}
		}
	}`))
	require.Error(t, err)
	var dupErr *DuplicateAnchorError
	assert.ErrorAs(t, err, &dupErr)
}

func TestAddResourceIdempotentSameContent(t *testing.T) {
	c := NewCompiler()
	doc := mustDecode(t, `{"type": "string"}`)
	added, err := c.AddResource("mem://idempotent.json", doc)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = c.AddResource("mem://idempotent.json", mustDecode(t, `{"type": "string"}`))
	require.NoError(t, err, "re-adding identical content must be a no-op, not an error")
	assert.False(t, added)
}

func TestAddResourceConflictingContentIsBug(t *testing.T) {
	c := NewCompiler()
	_, err := c.AddResource("mem://conflict.json", mustDecode(t, `{"type": "string"}`))
	require.NoError(t, err)

	_, err = c.AddResource("mem://conflict.json", mustDecode(t, `{"type": "integer"}`))
	require.Error(t, err)
	var bugErr *BugError
	assert.ErrorAs(t, err, &bugErr)
}

func TestCompileUnsupportedURL(t *testing.T) {
	c := NewCompiler()
	url := "mem://unsupported-ref.json"
	_, err := c.AddResource(url, mustDecode(t, `{"$ref": "ftp://example.com/other.json"}`))
	require.NoError(t, err)

	_, err = c.Compile(NewArena(), url)
	require.Error(t, err)
	var unsupported *UnsupportedURLError
	assert.ErrorAs(t, err, &unsupported)
}

func TestCompileJSONPointerNotFound(t *testing.T) {
	c := NewCompiler()
	url := "mem://missing-pointer.json"
	_, err := c.AddResource(url, mustDecode(t, `{"$ref": "#/$defs/missing"}`))
	require.NoError(t, err)

	_, err = c.Compile(NewArena(), url)
	require.Error(t, err)
	var notFound *JSONPointerNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCompileInvalidRegex(t *testing.T) {
	c := NewCompiler()
	url := "mem://bad-pattern.json"
	_, err := c.AddResource(url, mustDecode(t, `{"pattern": "(unterminated"}`))
	require.NoError(t, err)

	_, err = c.Compile(NewArena(), url)
	require.Error(t, err)
	var invalidRegex *InvalidRegexError
	assert.ErrorAs(t, err, &invalidRegex)
}

func TestEvaluateDraft7RefSuppressesSiblings(t *testing.T) {
	arena, h := compileSchema(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"$ref": "#/$defs/str",
		"minLength": 100,
		"$defs": {"str": {"type": "string"}}
	}`)

	require.NoError(t, validateJSON(t, arena, h, `"x"`), "minLength sibling to $ref must be ignored pre-2019-09")
	assert.Error(t, validateJSON(t, arena, h, `42`), "the $ref target's type:string must still apply")
}

func TestEvaluateFormatAssertion(t *testing.T) {
	arena, h := compileSchema(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"format": "email"
	}`)

	c := NewCompiler().EnableFormatAssertions()
	url := "mem://format-assert.json"
	_, err := c.AddResource(url, mustDecode(t, `{"format": "email"}`))
	require.NoError(t, err)
	arena2 := NewArena()
	h2, err := c.Compile(arena2, url)
	require.NoError(t, err)

	v := NewReferenceValidator()
	require.NoError(t, v.Validate(arena2, h2, "alice@example.com"))
	assert.Error(t, v.Validate(arena2, h2, "not-an-email"))

	// Without assertions enabled, format is annotation-only.
	require.NoError(t, validateJSON(t, arena, h, `"not-an-email"`))
}

package schemac

import "regexp"

// Handle is a dense, arena-relative index identifying one compiled Record.
// Handles are stable for the lifetime of the Arena that produced them: once
// issued, a Handle always refers to the same Record, which is exactly what
// lets cyclic $ref graphs close without recursion (see Arena.enqueue).
type Handle int

// noHandle marks an optional reference field that was never enqueued.
const noHandle Handle = -1

// Dependency represents one entry of the draft 4/6/7 "dependencies" keyword,
// which is either a list of required sibling properties or a subschema the
// whole instance must additionally satisfy.
type Dependency struct {
	Props  []string
	Schema Handle // noHandle if Props is set instead
}

// PatternProperty pairs a compiled regular expression with the handle of
// the subschema values matching it must satisfy.
type PatternProperty struct {
	Pattern *regexp.Regexp
	Raw     string
	Schema  Handle
}

// Record is the compiled, draft-agnostic representation of one JSON Schema
// subschema. Every keyword this compiler understands has a home here;
// fields a given draft/vocabulary does not populate are simply left at
// their zero value. Children are referenced by Handle, never by pointer,
// so the Record graph can describe cycles without the Go GC ever seeing a
// reference cycle.
type Record struct {
	Index     Handle
	Location  string // canonical location this record was compiled from
	Draft     Draft
	Resource  string // absolute URL of the resource (schema document/subschema) owning this location

	// Boolean schemas (`true`/`false`) short-circuit every other field.
	IsBoolean bool
	Boolean   bool

	// core
	Ref              Handle
	RefIsSet         bool
	DynamicRef       Handle
	DynamicRefIsSet  bool
	DynamicRefAnchor string
	DynamicAnchors   map[string]Handle // anchor name -> handle, only on resource roots

	// $recursiveRef/$recursiveAnchor (2019-09). Kept separate from
	// DynamicRef/DynamicAnchors: unlike $dynamicRef, $recursiveRef never
	// names an anchor, and RecursiveAnchor is a plain bool carried on
	// whichever schema resource sets it, not just resource roots.
	RecursiveRef      Handle
	RecursiveRefIsSet bool
	RecursiveAnchor   bool

	// applicator
	AllOf      []Handle
	AnyOf      []Handle
	OneOf      []Handle
	Not        Handle
	NotIsSet   bool
	If         Handle
	IfIsSet    bool
	Then       Handle
	ThenIsSet  bool
	Else       Handle
	ElseIsSet  bool

	DependentSchemas map[string]Handle
	Dependencies     map[string]Dependency // "dependencies", plus 2019-09+ "dependentRequired"

	PrefixItems []Handle // 2020-12 tuple validation
	Items       Handle   // schema-form "items": every element (draft<2020) or the elements after PrefixItems (2020-12)
	ItemsIsSet  bool
	ItemsTuple  []Handle // draft<2020 array-form "items"
	AdditionalItems     Handle // draft<2020 only
	AdditionalItemsIsSet bool
	AdditionalItemsBool  bool
	AdditionalItemsIsBool bool

	Contains      Handle
	ContainsIsSet bool

	Properties           map[string]Handle
	PatternProperties    []PatternProperty
	AdditionalProperties     Handle
	AdditionalPropertiesIsSet bool
	AdditionalPropertiesBool  bool
	AdditionalPropertiesIsBool bool
	PropertyNames     Handle
	PropertyNamesIsSet bool

	UnevaluatedItems      Handle
	UnevaluatedItemsIsSet bool
	UnevaluatedProperties      Handle
	UnevaluatedPropertiesIsSet bool

	// validation
	Types   []string // "type", normalized to a slice (single value or array)
	Enum    []any
	HasEnum bool
	Const   any
	HasConst bool

	MultipleOf       *Rat
	Maximum          *Rat
	ExclusiveMaximum *Rat
	Minimum          *Rat
	ExclusiveMinimum *Rat

	MaxLength *int
	MinLength *int
	Pattern   *regexp.Regexp
	PatternRaw string

	MaxItems    *int
	MinItems    *int
	UniqueItems bool
	MaxContains *int
	MinContains *int

	MaxProperties *int
	MinProperties *int
	Required      []string

	// format / content
	Format       string
	AssertFormat bool

	ContentEncoding  string
	ContentMediaType string
	ContentSchema      Handle
	ContentSchemaIsSet bool
	AssertContent      bool

	// annotations, carried through for the Validator/consumers but never
	// themselves a constraint
	Title       any
	Description any
	Default     any
	Deprecated  any
	ReadOnly    any
	WriteOnly   any
	Examples    any
}

func newRecord(index Handle, loc string, draft Draft, resource string) *Record {
	return &Record{
		Index:    index,
		Location: loc,
		Draft:    draft,
		Resource: resource,
		Ref:      noHandle,
		DynamicRef: noHandle,
		RecursiveRef: noHandle,
		Not:      noHandle,
		If:       noHandle,
		Then:     noHandle,
		Else:     noHandle,
		Items:    noHandle,
		AdditionalItems: noHandle,
		Contains: noHandle,
		AdditionalProperties: noHandle,
		PropertyNames:        noHandle,
		UnevaluatedItems:       noHandle,
		UnevaluatedProperties:  noHandle,
		ContentSchema:          noHandle,
	}
}

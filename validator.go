package schemac

// Validator is the collaborator a Compiler can use to check a decoded
// instance against a compiled schema. The Root Store also uses one (when
// installed via Compiler.SetValidator) to self-check a loaded document
// against its own meta-schema before trusting it.
type Validator interface {
	Validate(arena *Arena, start Handle, instance any) error
}

// refValidator is the bundled reference Validator. It is grounded on the
// teacher's Schema.evaluate: the same evaluatedProps/evaluatedItems
// threading and per-keyword dispatch order, rebuilt against the
// Arena/Handle model instead of a pointer tree. It does not aim to be a
// second, competing validation engine — just enough keyword coverage to
// exercise a compiled Arena end-to-end and to let the Root Store
// self-validate meta-schemas.
type refValidator struct {
	arena      *Arena
	formats    map[string]FormatFunc
	decoders   map[string]DecodeFunc
	mediaTypes map[string]MediaTypeFunc
}

// NewReferenceValidator returns a Validator built from this package's
// built-in formats/decoders/media-types.
func NewReferenceValidator() Validator {
	return &refValidator{
		formats:    builtinFormats,
		decoders:   defaultDecodersTable,
		mediaTypes: defaultMediaTypesTable,
	}
}

// dynamicScope tracks the resource-root Handles (and the Handles of schemas
// setting $recursiveAnchor) an in-progress evaluation has passed through,
// outermost first, so a $dynamicRef can be re-resolved against the
// outermost resource that still declares the anchor it names, and a
// $recursiveRef against the outermost schema setting $recursiveAnchor
// (https://json-schema.org/draft/2020-12/json-schema-core#name-dynamic-scope).
type dynamicScope struct {
	resources []Handle
}

func (s *dynamicScope) push(h Handle) { s.resources = append(s.resources, h) }
func (s *dynamicScope) pop()          { s.resources = s.resources[:len(s.resources)-1] }

func (v *refValidator) resolveDynamicAnchor(st *dynamicScope, anchor string) (Handle, bool) {
	for _, rh := range st.resources {
		if h, ok := v.arena.Record(rh).DynamicAnchors[anchor]; ok {
			return h, true
		}
	}
	return noHandle, false
}

// resolveRecursiveRef implements $recursiveRef/$recursiveAnchor
// (draft 2019-09): lexicalTarget, the location $recursiveRef resolves to
// the same way a plain $ref would, is used as-is unless it sets
// $recursiveAnchor. Only then does resolution recurse to the outermost
// resource in the current dynamic scope that also sets $recursiveAnchor,
// falling back to lexicalTarget if none do.
func (v *refValidator) resolveRecursiveRef(st *dynamicScope, lexicalTarget Handle) Handle {
	if !v.arena.Record(lexicalTarget).RecursiveAnchor {
		return lexicalTarget
	}
	for _, rh := range st.resources {
		if v.arena.Record(rh).RecursiveAnchor {
			return rh
		}
	}
	return lexicalTarget
}

// Validate checks instance against the compiled schema at start within
// arena, returning a *ValidationError listing every keyword failure, or nil
// if instance is valid.
func (v *refValidator) Validate(arena *Arena, start Handle, instance any) error {
	rv := &refValidator{arena: arena, formats: v.formats, decoders: v.decoders, mediaTypes: v.mediaTypes}
	ve := &ValidationError{}
	rv.evalHandle(start, "", instance, ve, &dynamicScope{})
	if ve.isEmpty() {
		return nil
	}
	return ve
}

// validateHandle lets a keyword evaluator (e.g. contentSchema) recurse into
// a schema against this same Arena, independent of any outer dynamic scope.
func (v *refValidator) validateHandle(h Handle, instanceLoc string, instance any) error {
	ve := &ValidationError{}
	v.evalHandle(h, instanceLoc, instance, ve, &dynamicScope{})
	if ve.isEmpty() {
		return nil
	}
	return ve
}

// evalHandle evaluates one compiled Record against instance, appending
// every keyword failure to ve and returning which object properties / array
// indices this evaluation (including everything it recursed into) marked as
// evaluated, for unevaluatedProperties/unevaluatedItems to consume.
func (v *refValidator) evalHandle(h Handle, instanceLoc string, instance any, ve *ValidationError, st *dynamicScope) (map[string]bool, map[int]bool) {
	rec := v.arena.Record(h)
	evaluatedProps := make(map[string]bool)
	evaluatedItems := make(map[int]bool)

	if rec.IsBoolean {
		if !rec.Boolean {
			ve.add(newEvalError("false", instanceLoc, rec.Location, "instance is rejected: schema is `false`"))
		}
		return evaluatedProps, evaluatedItems
	}

	pushed := rec.DynamicAnchors != nil || rec.RecursiveAnchor
	if pushed {
		st.push(h)
	}

	if rec.RefIsSet {
		props, items := v.evalHandle(rec.Ref, instanceLoc, instance, ve, st)
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	}

	if rec.DynamicRefIsSet {
		target := rec.DynamicRef
		if rec.DynamicRefAnchor != "" {
			if resolved, ok := v.resolveDynamicAnchor(st, rec.DynamicRefAnchor); ok {
				target = resolved
			}
		}
		props, items := v.evalHandle(target, instanceLoc, instance, ve, st)
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	}

	if rec.RecursiveRefIsSet {
		target := v.resolveRecursiveRef(st, rec.RecursiveRef)
		props, items := v.evalHandle(target, instanceLoc, instance, ve, st)
		mergeStringMaps(evaluatedProps, props)
		mergeIntMaps(evaluatedItems, items)
	}

	if err := evaluateType(rec, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateEnum(rec, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateConst(rec, instance); err != nil {
		ve.add(err)
	}

	if err := evaluateMultipleOf(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateMaximum(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateExclusiveMaximum(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateMinimum(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateExclusiveMinimum(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}

	if err := evaluateMaxLength(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateMinLength(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluatePattern(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}

	if err := evaluateMaxItems(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateMinItems(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateUniqueItems(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}

	if err := evaluateMaxProperties(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateMinProperties(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if err := evaluateRequired(rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}

	if err := evaluateFormat(v, rec, instanceLoc, instance); err != nil {
		ve.add(err)
	}
	if rec.ContentEncoding != "" || rec.ContentMediaType != "" || rec.ContentSchemaIsSet {
		if err := evaluateContent(v, rec, instanceLoc, instance); err != nil {
			ve.add(err)
		}
	}

	v.evaluateAllOf(rec, instanceLoc, instance, ve, st, evaluatedProps, evaluatedItems)
	v.evaluateAnyOf(rec, instanceLoc, instance, ve, st, evaluatedProps, evaluatedItems)
	v.evaluateOneOf(rec, instanceLoc, instance, ve, st, evaluatedProps, evaluatedItems)
	v.evaluateNot(rec, instanceLoc, instance, ve, st)
	v.evaluateConditional(rec, instanceLoc, instance, ve, st, evaluatedProps, evaluatedItems)

	v.evaluateDependentSchemas(rec, instanceLoc, instance, ve, st, evaluatedProps)
	v.evaluateDependencies(rec, instanceLoc, instance, ve, st)

	v.evaluateItems(rec, instanceLoc, instance, ve, st, evaluatedItems)
	v.evaluateContains(rec, instanceLoc, instance, ve, st, evaluatedItems)

	v.evaluateProperties(rec, instanceLoc, instance, ve, st, evaluatedProps)
	v.evaluatePatternProperties(rec, instanceLoc, instance, ve, st, evaluatedProps)
	v.evaluateAdditionalProperties(rec, instanceLoc, instance, ve, st, evaluatedProps)
	v.evaluatePropertyNames(rec, instanceLoc, instance, ve, st)

	v.evaluateUnevaluatedItems(rec, instanceLoc, instance, ve, st, evaluatedItems)
	v.evaluateUnevaluatedProperties(rec, instanceLoc, instance, ve, st, evaluatedProps)

	if pushed {
		st.pop()
	}

	return evaluatedProps, evaluatedItems
}

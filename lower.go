package schemac

import (
	"regexp"
)

// lowerCtx carries everything one compileOne-equivalent call needs: the
// raw decoded keyword object, where it lives, and the shared enqueue
// machinery (arena + work queue) new child locations are pushed onto.
type lowerCtx struct {
	c     *Compiler
	arena *Arena
	queue *[]string

	obj    map[string]any
	loc    string
	res    *resource // the resource (dialect/vocab/draft scope) owning loc
	docURL string
}

// lowerOne is the direct Go transliteration of the retrieved boon
// compiler's compile_one: given the raw JSON value at loc, build the
// Record for it, enqueuing every child location a keyword's value refers
// to. Cyclic graphs are safe because Arena.enqueue returns the existing
// Handle for a location it has already seen; by the time lowerOne runs,
// loc already has a reserved Handle in arena.
func (c *Compiler) lowerOne(v any, loc string, res *resource, docURL string, queue *[]string) (*Record, error) {
	index, _ := c.arena.Lookup(loc)
	rec := newRecord(index, loc, res.draft, res.baseURL)

	resourceLoc := docURL + "#" + res.ptr
	resourceHandle := c.arena.enqueue(queue, resourceLoc)

	if resourceHandle == index && res.draft >= Draft2020_12 {
		rec.DynamicAnchors = make(map[string]Handle, len(res.dynamicAnchors))
		for name, ptr := range res.dynamicAnchors {
			rec.DynamicAnchors[name] = c.arena.enqueue(queue, docURL+"#"+ptr)
		}
	}

	switch b := v.(type) {
	case bool:
		rec.IsBoolean = true
		rec.Boolean = b
		return rec, nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return rec, nil
	}

	lc := &lowerCtx{c: c, arena: c.arena, queue: queue, obj: obj, loc: loc, res: res, docURL: docURL}

	if res.vocabs.Has(vocabCore) {
		refHandle, refOK, err := lc.enqueueRef("$ref")
		if err != nil {
			return nil, err
		}
		if refOK {
			rec.Ref = refHandle
			rec.RefIsSet = true
			if res.draft < Draft2019_09 {
				// All other properties in a "$ref" object MUST be ignored.
				return rec, nil
			}
		}
	}

	if res.vocabs.Has(vocabApplicator) {
		rec.AllOf = lc.enqueueArr("allOf")
		rec.AnyOf = lc.enqueueArr("anyOf")
		rec.OneOf = lc.enqueueArr("oneOf")
		if h, ok := lc.enqueueProp("not"); ok {
			rec.Not, rec.NotIsSet = h, true
		}

		if res.draft < Draft2020_12 {
			if err := lc.lowerItemsLegacy(rec); err != nil {
				return nil, err
			}
		}

		rec.Properties = lc.enqueueMap("properties")
		patternProps, err := lc.lowerPatternProperties()
		if err != nil {
			return nil, err
		}
		rec.PatternProperties = patternProps

		if err := lc.lowerAdditionalProperties(rec); err != nil {
			return nil, err
		}

		if deps, ok := obj["dependencies"].(map[string]any); ok {
			rec.Dependencies = make(map[string]Dependency, len(deps))
			for k, dv := range deps {
				if arr, isArr := dv.([]any); isArr {
					rec.Dependencies[k] = Dependency{Props: toStrings(arr), Schema: noHandle}
				} else {
					h := lc.arena.enqueue(lc.queue, childLocation(lc.loc, "dependencies", k))
					rec.Dependencies[k] = Dependency{Schema: h}
				}
			}
		}
	}

	if res.vocabs.Has(vocabValidation) {
		rec.Types = lowerTypes(obj["type"])

		if e, ok := obj["enum"].([]any); ok {
			rec.Enum = e
			rec.HasEnum = true
		}

		rec.MultipleOf = NewRat(obj["multipleOf"])

		rec.Maximum = NewRat(obj["maximum"])
		if exclusive, ok := obj["exclusiveMaximum"].(bool); ok {
			if exclusive {
				rec.ExclusiveMaximum, rec.Maximum = rec.Maximum, nil
			}
		} else {
			rec.ExclusiveMaximum = NewRat(obj["exclusiveMaximum"])
		}

		rec.Minimum = NewRat(obj["minimum"])
		if exclusive, ok := obj["exclusiveMinimum"].(bool); ok {
			if exclusive {
				rec.ExclusiveMinimum, rec.Minimum = rec.Minimum, nil
			}
		} else {
			rec.ExclusiveMinimum = NewRat(obj["exclusiveMinimum"])
		}

		rec.MaxLength = loadUsize(obj, "maxLength")
		rec.MinLength = loadUsize(obj, "minLength")

		if p, ok := obj["pattern"].(string); ok {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, &InvalidRegexError{Location: loc, Regex: p, Err: err}
			}
			rec.Pattern = re
			rec.PatternRaw = p
		}

		rec.MaxItems = loadUsize(obj, "maxItems")
		rec.MinItems = loadUsize(obj, "minItems")
		if unique, ok := obj["uniqueItems"].(bool); ok {
			rec.UniqueItems = unique
		}

		rec.MaxProperties = loadUsize(obj, "maxProperties")
		rec.MinProperties = loadUsize(obj, "minProperties")

		if req, ok := obj["required"]; ok {
			rec.Required = toStringsAny(req)
		}
	}

	formatVocab := formatVocabName(res.draft)
	if c.assertFormat || res.vocabs.Has(formatVocab) {
		if format, ok := obj["format"].(string); ok {
			if _, known := c.formats[format]; known {
				rec.Format = format
			} else if _, known := builtinFormats[format]; known {
				rec.Format = format
			}
			rec.AssertFormat = c.assertFormat || res.vocabs.Has(formatVocab)
		}
	}

	if res.draft >= Draft6 {
		if res.vocabs.Has(vocabApplicator) {
			if h, ok := lc.enqueueProp("contains"); ok {
				rec.Contains, rec.ContainsIsSet = h, true
			}
			if h, ok := lc.enqueueProp("propertyNames"); ok {
				rec.PropertyNames, rec.PropertyNamesIsSet = h, true
			}
		}
		if res.vocabs.Has(vocabValidation) {
			if constVal, ok := obj["const"]; ok {
				rec.Const, rec.HasConst = constVal, true
			}
		}
	}

	if res.draft >= Draft7 {
		if res.vocabs.Has(vocabApplicator) {
			if h, ok := lc.enqueueProp("if"); ok {
				rec.If, rec.IfIsSet = h, true
				if h, ok := lc.enqueueProp("then"); ok {
					rec.Then, rec.ThenIsSet = h, true
				}
				if h, ok := lc.enqueueProp("else"); ok {
					rec.Else, rec.ElseIsSet = h, true
				}
			}
		}
		if c.assertContent {
			if enc, ok := obj["contentEncoding"].(string); ok {
				if _, known := c.decoders[enc]; known {
					rec.ContentEncoding = enc
				} else if _, known := defaultDecodersTable[enc]; known {
					rec.ContentEncoding = enc
				}
			}
			if mt, ok := obj["contentMediaType"].(string); ok {
				if _, known := c.mediaTypes[mt]; known {
					rec.ContentMediaType = mt
				} else if _, known := defaultMediaTypesTable[mt]; known {
					rec.ContentMediaType = mt
				}
			}
			if rec.ContentMediaType != "" {
				if h, ok := lc.enqueueProp("contentSchema"); ok {
					rec.ContentSchema, rec.ContentSchemaIsSet = h, true
				}
			}
			rec.AssertContent = c.assertContent
		}
	}

	if res.draft >= Draft2019_09 {
		if res.vocabs.Has(vocabCore) {
			recRefHandle, recRefOK, err := lc.enqueueRef("$recursiveRef")
			if err != nil {
				return nil, err
			}
			if recRefOK {
				rec.RecursiveRef = recRefHandle
				rec.RecursiveRefIsSet = true
			}
			if anchor, ok := obj["$recursiveAnchor"].(bool); ok {
				rec.RecursiveAnchor = anchor
			}
		}

		if res.vocabs.Has(vocabValidation) {
			if rec.ContainsIsSet {
				rec.MaxContains = loadUsize(obj, "maxContains")
				rec.MinContains = loadUsize(obj, "minContains")
			}
			if depReq, ok := obj["dependentRequired"].(map[string]any); ok {
				rec.Dependencies = mergeDependentRequired(rec.Dependencies, depReq)
			}
		}

		if res.vocabs.Has(vocabApplicator) {
			rec.DependentSchemas = lc.enqueueMap("dependentSchemas")
		}

		if res.vocabs.Has(unevaluatedVocabName(res.draft)) {
			if h, ok := lc.enqueueProp("unevaluatedItems"); ok {
				rec.UnevaluatedItems, rec.UnevaluatedItemsIsSet = h, true
			}
			if h, ok := lc.enqueueProp("unevaluatedProperties"); ok {
				rec.UnevaluatedProperties, rec.UnevaluatedPropertiesIsSet = h, true
			}
		}
	}

	if res.draft >= Draft2020_12 {
		if res.vocabs.Has(vocabCore) {
			dynRefHandle, dynRefOK, err := lc.enqueueRef("$dynamicRef")
			if err != nil {
				return nil, err
			}
			if dynRefOK {
				rec.DynamicRef = dynRefHandle
				rec.DynamicRefIsSet = true
				// The ref's own fragment, if a plain name rather than a JSON
				// pointer, is the dynamic anchor a Validator must re-resolve
				// against the active dynamic scope at evaluation time (the
				// handle above is only the lexical fallback).
				if ref, ok := obj["$dynamicRef"].(string); ok {
					if _, frag := splitRef(ref); frag != "" && !isJSONPointerFragment(frag) {
						rec.DynamicRefAnchor = frag
					}
				}
			}
		}
		if res.vocabs.Has(vocabApplicator) {
			rec.PrefixItems = lc.enqueueArr("prefixItems")
			if h, ok := lc.enqueueProp("items"); ok {
				rec.Items, rec.ItemsIsSet = h, true
			}
		}
	}

	return rec, nil
}

// enqueueProp enqueues obj[name] as a single subschema, if present.
func (lc *lowerCtx) enqueueProp(name string) (Handle, bool) {
	if _, ok := lc.obj[name]; !ok {
		return noHandle, false
	}
	return lc.arena.enqueue(lc.queue, childLocation(lc.loc, name)), true
}

// enqueueArr enqueues every element of obj[name] (expected to be a JSON
// array) as its own subschema.
func (lc *lowerCtx) enqueueArr(name string) []Handle {
	arr, ok := lc.obj[name].([]any)
	if !ok {
		return nil
	}
	handles := make([]Handle, len(arr))
	for i := range arr {
		handles[i] = lc.arena.enqueue(lc.queue, childLocation(lc.loc, name, indexToken(i)))
	}
	return handles
}

// enqueueMap enqueues every value of obj[name] (expected to be a JSON
// object) as its own subschema, keyed by property name.
func (lc *lowerCtx) enqueueMap(name string) map[string]Handle {
	m, ok := lc.obj[name].(map[string]any)
	if !ok {
		return nil
	}
	handles := make(map[string]Handle, len(m))
	for k := range m {
		handles[k] = lc.arena.enqueue(lc.queue, childLocation(lc.loc, name, k))
	}
	return handles
}

// enqueueRef resolves obj[name] (a $ref-shaped string keyword) against
// this location's base URL and the Root Store, then enqueues the
// resolved, canonical target location.
func (lc *lowerCtx) enqueueRef(name string) (Handle, bool, error) {
	ref, ok := lc.obj[name].(string)
	if !ok {
		return noHandle, false, nil
	}
	abs, err := resolveURL(lc.res.baseURL, ref)
	if err != nil {
		return noHandle, false, &ParseURLError{URL: ref, Err: err}
	}
	resolved, err := lc.c.store.resolve(abs)
	if err != nil {
		return noHandle, false, err
	}
	return lc.arena.enqueue(lc.queue, resolved), true, nil
}

func (lc *lowerCtx) lowerItemsLegacy(rec *Record) error {
	if _, isArr := lc.obj["items"].([]any); isArr {
		rec.ItemsTuple = lc.enqueueArr("items")
		if b, ok := lc.obj["additionalItems"].(bool); ok {
			rec.AdditionalItemsIsBool, rec.AdditionalItemsBool = true, b
			rec.AdditionalItemsIsSet = true
		} else if h, ok := lc.enqueueProp("additionalItems"); ok {
			rec.AdditionalItems, rec.AdditionalItemsIsSet = h, true
		}
		return nil
	}
	if h, ok := lc.enqueueProp("items"); ok {
		rec.Items, rec.ItemsIsSet = h, true
	}
	return nil
}

func (lc *lowerCtx) lowerPatternProperties() ([]PatternProperty, error) {
	obj, ok := lc.obj["patternProperties"].(map[string]any)
	if !ok {
		return nil, nil
	}
	props := make([]PatternProperty, 0, len(obj))
	for pname := range obj {
		re, err := regexp.Compile(pname)
		if err != nil {
			return nil, &InvalidRegexError{
				Location: lc.loc + "/patternProperties",
				Regex:    pname,
				Err:      err,
			}
		}
		h := lc.arena.enqueue(lc.queue, childLocation(lc.loc, "patternProperties", pname))
		props = append(props, PatternProperty{Pattern: re, Raw: pname, Schema: h})
	}
	return props, nil
}

func (lc *lowerCtx) lowerAdditionalProperties(rec *Record) error {
	if b, ok := lc.obj["additionalProperties"].(bool); ok {
		rec.AdditionalPropertiesIsBool, rec.AdditionalPropertiesBool = true, b
		rec.AdditionalPropertiesIsSet = true
		return nil
	}
	if h, ok := lc.enqueueProp("additionalProperties"); ok {
		rec.AdditionalProperties, rec.AdditionalPropertiesIsSet = h, true
	}
	return nil
}

func lowerTypes(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toStrings(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toStringsAny(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	return toStrings(arr)
}

func loadUsize(obj map[string]any, name string) *int {
	n, ok := obj[name].(float64)
	if !ok {
		return nil
	}
	if n < 0 || n != float64(int(n)) {
		return nil
	}
	i := int(n)
	return &i
}

func mergeDependentRequired(deps map[string]Dependency, depReq map[string]any) map[string]Dependency {
	if deps == nil {
		deps = make(map[string]Dependency, len(depReq))
	}
	for k, v := range depReq {
		arr, ok := v.([]any)
		if !ok {
			continue
		}
		if existing, ok := deps[k]; ok && existing.Schema == noHandle {
			existing.Props = append(existing.Props, toStrings(arr)...)
			deps[k] = existing
			continue
		}
		deps[k] = Dependency{Props: toStrings(arr), Schema: noHandle}
	}
	return deps
}

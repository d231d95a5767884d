package schemac

import "strings"

// resource is one `$id`-rooted scope within a document: either the document
// root itself, or an embedded subschema that declared its own `$id`/`id`.
// Anchors and dynamic anchors are scoped to the resource that contains
// them, not to the document as a whole.
type resource struct {
	ptr            string // json pointer to this resource's root, relative to the document
	baseURL        string // absolute URL this resource resolves relative references against
	draft          Draft
	vocabs         VocabSet
	anchors        map[string]string // anchor name -> json pointer
	dynamicAnchors map[string]string // dynamic anchor name -> json pointer
}

func newResource(ptr, baseURL string, draft Draft, vocabs VocabSet) *resource {
	return &resource{
		ptr:            ptr,
		baseURL:        baseURL,
		draft:          draft,
		vocabs:         vocabs,
		anchors:        make(map[string]string),
		dynamicAnchors: make(map[string]string),
	}
}

// document is one loaded JSON document, decoded once and then scanned for
// every embedded resource it declares. This is the Go analogue of
// santhosh-tekuri/jsonschema's `root`, trimmed to what this compiler's
// lowering pass needs: base-URL/anchor resolution per resource.
type document struct {
	url       string // the URL this document was loaded from
	raw       any    // fully decoded JSON value
	resources map[string]*resource // keyed by json pointer
}

func newDocument(url string, raw any) *document {
	return &document{url: url, raw: raw, resources: make(map[string]*resource)}
}

// rootResource returns the resource rooted at the document itself. Every
// document has one, established by collectResources before anything else
// runs; a missing root resource is this package's own bug, not bad input.
func (d *document) rootResource() (*resource, error) {
	res, ok := d.resources[""]
	if !ok {
		return nil, bugf(nil, "root resource missing for document %s", d.url)
	}
	return res, nil
}

// resourceFor returns the innermost resource that owns ptr, walking up the
// pointer's path components until a declared resource is found (falling
// back to the document root).
func (d *document) resourceFor(ptr string) *resource {
	for {
		if res, ok := d.resources[ptr]; ok {
			return res
		}
		i := strings.LastIndexByte(ptr, '/')
		if i < 0 {
			break
		}
		ptr = ptr[:i]
	}
	root, _ := d.rootResource()
	return root
}

// collectResources walks the whole document once, discovering every
// embedded `$id`/`id` resource boundary and every `$anchor`/
// `$dynamicAnchor`/legacy-`id`-fragment anchor. fallbackDraft is the draft
// this document should use absent an identifiable `$schema` of its own
// (the draft itself is resolved by the caller via the Root Store, since
// doing so may require loading other documents to follow a `$schema`
// chain).
func (d *document) collectResources(fallbackDraft Draft, fallbackVocabs VocabSet) error {
	return d.collectResourcesAt(d.raw, d.url, "", fallbackDraft, fallbackVocabs)
}

func (d *document) collectResourcesAt(v any, base, ptr string, fallbackDraft Draft, fallbackVocabs VocabSet) error {
	if _, isBool := v.(bool); isBool {
		if ptr == "" {
			d.resources[ptr] = newResource(ptr, base, fallbackDraft, fallbackVocabs)
		}
		return nil
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	draft := fallbackDraft
	vocabs := fallbackVocabs
	idKeyword := "$id"
	if draft < Draft2019_09 {
		idKeyword = idKeywordFor(draft, obj)
	}

	id, _ := obj[idKeyword].(string)
	newBase := base
	if id != "" {
		resolved, err := resolveURL(base, id)
		if err != nil {
			return &InvalidIDError{Location: d.url + "#" + ptr}
		}
		newBase = resolved
	}

	if id != "" || ptr == "" {
		for p, existing := range d.resources {
			if existing.baseURL == newBase && p != ptr {
				return &DuplicateIDError{URL: d.url, ID: newBase}
			}
		}
		if _, exists := d.resources[ptr]; !exists {
			d.resources[ptr] = newResource(ptr, newBase, draft, vocabs)
		}
	}

	owner := d.resourceFor(ptr)
	if err := d.collectAnchors(obj, ptr, owner); err != nil {
		return err
	}

	// Pre-2019 drafts: a `$ref` sibling suppresses every other keyword, so
	// there is nothing further to discover under this object.
	if draft < Draft2019_09 {
		if _, hasRef := obj["$ref"]; hasRef {
			return nil
		}
	}

	for _, loc := range subschemaLocations(obj, draft) {
		child, ok := obj[loc.key]
		if !ok {
			continue
		}
		if err := d.walkSubschemaLocation(child, loc, newBase, ptr, draft, vocabs); err != nil {
			return err
		}
	}
	return nil
}

func (d *document) walkSubschemaLocation(child any, loc subschemaLoc, base, ptr string, draft Draft, vocabs VocabSet) error {
	childPtr := ptr + "/" + escapeToken(loc.key)
	switch loc.shape {
	case shapeSingle:
		return d.collectResourcesAt(child, base, childPtr, draft, vocabs)
	case shapeArray:
		arr, ok := child.([]any)
		if !ok {
			return nil
		}
		for i, item := range arr {
			if err := d.collectResourcesAt(item, base, childPtr+"/"+indexToken(i), draft, vocabs); err != nil {
				return err
			}
		}
	case shapeMap:
		m, ok := child.(map[string]any)
		if !ok {
			return nil
		}
		for k, item := range m {
			if err := d.collectResourcesAt(item, base, childPtr+"/"+escapeToken(k), draft, vocabs); err != nil {
				return err
			}
		}
	case shapeItemsPolymorphic:
		if arr, ok := child.([]any); ok {
			for i, item := range arr {
				if err := d.collectResourcesAt(item, base, childPtr+"/"+indexToken(i), draft, vocabs); err != nil {
					return err
				}
			}
		} else {
			return d.collectResourcesAt(child, base, childPtr, draft, vocabs)
		}
	}
	return nil
}

func (d *document) collectAnchors(obj map[string]any, ptr string, res *resource) error {
	addAnchor := func(name string) error {
		if existing, ok := res.anchors[name]; ok {
			if existing == ptr {
				return nil
			}
			return &DuplicateAnchorError{URL: d.url, Anchor: name}
		}
		res.anchors[name] = ptr
		return nil
	}

	if res.draft < Draft2019_09 {
		if _, hasRef := obj["$ref"]; hasRef {
			return nil
		}
		if id, ok := obj["$id"].(string); ok {
			_, frag := splitRef(id)
			if frag != "" && !isJSONPointerFragment(frag) {
				if err := addAnchor(frag); err != nil {
					return err
				}
			}
		} else if id, ok := obj["id"].(string); ok {
			_, frag := splitRef(id)
			if frag != "" && !isJSONPointerFragment(frag) {
				if err := addAnchor(frag); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if s, ok := obj["$anchor"].(string); ok {
		if err := addAnchor(s); err != nil {
			return err
		}
	}
	if res.draft >= Draft2020_12 {
		if s, ok := obj["$dynamicAnchor"].(string); ok {
			if err := addAnchor(s); err != nil {
				return err
			}
			res.dynamicAnchors[s] = ptr
		}
	}
	return nil
}

type subschemaShape int

const (
	shapeSingle subschemaShape = iota
	shapeArray
	shapeMap
	shapeItemsPolymorphic
)

type subschemaLoc struct {
	key   string
	shape subschemaShape
}

// subschemaLocations lists every keyword at this draft whose value (or
// whose elements) may themselves be schemas, so collectResourcesAt knows
// where to recurse. For draft 4/6/7 it also lists "dependencies" as a map;
// entries of it that are plain string lists rather than schemas are passed
// to collectResourcesAt too, which ignores any value that is not an object.
func subschemaLocations(obj map[string]any, draft Draft) []subschemaLoc {
	locs := []subschemaLoc{
		{"not", shapeSingle},
		{"allOf", shapeArray},
		{"anyOf", shapeArray},
		{"oneOf", shapeArray},
		{"properties", shapeMap},
		{"patternProperties", shapeMap},
		{"additionalProperties", shapeSingle},
		{"$defs", shapeMap},
		{"definitions", shapeMap},
	}
	if draft < Draft2020_12 {
		locs = append(locs, subschemaLoc{"items", shapeItemsPolymorphic})
		locs = append(locs, subschemaLoc{"additionalItems", shapeSingle})
	} else {
		locs = append(locs, subschemaLoc{"items", shapeSingle})
		locs = append(locs, subschemaLoc{"prefixItems", shapeArray})
	}
	if draft >= Draft6 {
		locs = append(locs, subschemaLoc{"contains", shapeSingle})
		locs = append(locs, subschemaLoc{"propertyNames", shapeSingle})
	}
	if draft >= Draft7 {
		locs = append(locs, subschemaLoc{"if", shapeSingle})
		locs = append(locs, subschemaLoc{"then", shapeSingle})
		locs = append(locs, subschemaLoc{"else", shapeSingle})
	}
	if draft >= Draft2019_09 {
		locs = append(locs, subschemaLoc{"dependentSchemas", shapeMap})
		locs = append(locs, subschemaLoc{"unevaluatedItems", shapeSingle})
		locs = append(locs, subschemaLoc{"unevaluatedProperties", shapeSingle})
	}
	if draft < Draft2019_09 {
		for name := range obj {
			if name == "dependencies" {
				locs = append(locs, subschemaLoc{"dependencies", shapeMap})
				break
			}
		}
	}
	return locs
}

// idKeywordFor returns "id" for a draft 4 object that carries one (draft 4
// predates $id) and "$id" otherwise, so a draft 4 object without "id" still
// uses "$id". No other draft looks at a bare "id".
func idKeywordFor(draft Draft, obj map[string]any) string {
	if draft == Draft4 {
		if _, ok := obj["id"]; ok {
			return "id"
		}
	}
	return "$id"
}

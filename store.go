package schemac

import (
	"reflect"
	"strings"
)

// store is the Root Store: the cache of every document this Compiler has
// loaded, keyed by the absolute URL it was loaded from. It owns resource/
// anchor discovery (document.go) and $schema-driven draft resolution, the
// way santhosh-tekuri/jsonschema's `roots` owns its `root` cache.
type store struct {
	docs         map[string]*document
	loaders      *loaderRegistry
	defaultDraft Draft
	validator    Validator
	assertMeta   bool // whether loaded documents are validated against their own meta-schema

	// compileMeta compiles the meta-schema named by a metaSchemaURL into an
	// Arena it owns and caches across calls, returning the Handle of its
	// root. Set by the owning Compiler (see Compiler.compileMetaSchema) so
	// the store never needs its own format/decoder tables or work queue.
	compileMeta func(metaSchemaURL string) (*Arena, Handle, error)
}

func newStore(loaders *loaderRegistry, defaultDraft Draft) *store {
	return &store{
		docs:         make(map[string]*document),
		loaders:      loaders,
		defaultDraft: defaultDraft,
	}
}

// addResource registers an already-decoded, in-memory document (the
// "preload" path used by AddResource, so callers never need a loader just
// to hand the compiler a schema they already have in hand). It implements
// the Root Store's or_insert contract: re-registering the same url is a
// no-op only if raw is deeply equal to what is already cached; registering
// different content under a url already in use is this package's own bug
// (the caller handed two different documents the same identity), not a
// recoverable input error.
func (s *store) addResource(url string, raw any) (*document, error) {
	if existing, ok := s.docs[url]; ok {
		if !reflect.DeepEqual(existing.raw, raw) {
			return nil, bugf(nil, "AddResource: %q already registered with different content", url)
		}
		return existing, nil
	}
	return s.build(url, raw)
}

// orLoad returns the cached document for url, loading and decoding it via
// the registered Loader on a cache miss.
func (s *store) orLoad(url string) (*document, error) {
	if d, ok := s.docs[url]; ok {
		return d, nil
	}
	raw, err := s.loaders.load(url)
	if err != nil {
		return nil, err
	}
	decoded, err := decodeJSONOrYAML(raw)
	if err != nil {
		return nil, &LoadURLError{URL: url, Err: err}
	}
	return s.build(url, decoded)
}

func (s *store) build(url string, raw any) (*document, error) {
	d := newDocument(url, raw)

	draft, vocabs, err := s.resolveDialect(url, raw, map[string]bool{})
	if err != nil {
		return nil, err
	}
	if err := d.collectResources(draft, vocabs); err != nil {
		return nil, err
	}

	if s.validator != nil && s.assertMeta && s.compileMeta != nil && !isOfficialMetaSchemaURL(url) {
		root, err := d.rootResource()
		if err != nil {
			return nil, err
		}
		metaArena, metaHandle, err := s.compileMeta(root.draft.info().metaSchemaURL)
		if err != nil {
			return nil, err
		}
		if verr := s.validator.Validate(metaArena, metaHandle, d.raw); verr != nil {
			return nil, &NotValidError{URL: url, Err: verr}
		}
	}

	s.docs[url] = d
	return d, nil
}

// resolveDialect figures out which draft (and vocabulary set) a document
// uses by following its $schema value, which may itself point at another
// document that must be loaded. seen guards against a $schema cycle.
func (s *store) resolveDialect(url string, raw any, seen map[string]bool) (Draft, VocabSet, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return s.defaultDraft, s.defaultDraft.info().defaultVocabs, nil
	}
	schemaURL, ok := obj["$schema"].(string)
	if !ok || schemaURL == "" {
		return s.defaultDraft, s.defaultDraft.info().defaultVocabs, nil
	}

	if draft, known := draftFromMetaSchemaURL(schemaURL); known {
		vocabs := draft.info().defaultVocabs
		if draft.supportsVocabulary() {
			if vocabObj, ok := obj["$vocabulary"].(map[string]any); ok {
				parsed, err := vocabSetFromMeta(url, vocabObj)
				if err != nil {
					return DraftUnknown, nil, err
				}
				vocabs = parsed
			}
		}
		return draft, vocabs, nil
	}

	if seen[schemaURL] {
		return DraftUnknown, nil, &MetaSchemaCycleError{URL: url}
	}
	seen[schemaURL] = true

	metaRaw, err := s.loaders.load(schemaURL)
	if err != nil {
		return DraftUnknown, nil, &InvalidMetaSchemaError{URL: schemaURL}
	}
	decoded, err := decodeJSONOrYAML(metaRaw)
	if err != nil {
		return DraftUnknown, nil, &InvalidMetaSchemaError{URL: schemaURL}
	}
	return s.resolveDialect(schemaURL, decoded, seen)
}

func isOfficialMetaSchemaURL(u string) bool {
	return strings.HasPrefix(u, "http://json-schema.org/") ||
		strings.HasPrefix(u, "https://json-schema.org/")
}

// resolve looks up a full reference (base URL + fragment, already joined
// the way $ref resolution demands) against this store, returning the
// canonical "<url>#<pointer>" location it names. It loads url on a cache
// miss and resolves an anchor fragment via the owning resource, or treats
// the fragment as a raw JSON pointer otherwise.
func (s *store) resolve(refURL string) (string, error) {
	url, frag := splitRef(refURL)
	d, err := s.orLoad(url)
	if err != nil {
		return "", err
	}
	if frag == "" || isJSONPointerFragment(frag) {
		if _, err := lookupPointer(url+"#"+frag, d.raw, frag); err != nil {
			return "", err
		}
		return url + "#" + frag, nil
	}

	root, err := d.rootResource()
	if err != nil {
		return "", err
	}
	if ptr, ok := root.anchors[frag]; ok {
		return url + "#" + ptr, nil
	}
	if ptr, ok := root.dynamicAnchors[frag]; ok {
		return url + "#" + ptr, nil
	}
	for _, res := range d.resources {
		if ptr, ok := res.anchors[frag]; ok {
			return url + "#" + ptr, nil
		}
	}
	return "", &AnchorNotFoundError{SchemaURL: url, Anchor: frag}
}

// hasVocab reports whether the resource owning loc has the named
// vocabulary active, falling back to the document root when loc names no
// resource of its own.
func (s *store) hasVocab(loc, vocab string) bool {
	url, ptr := splitLocation(loc)
	d, ok := s.docs[url]
	if !ok {
		return false
	}
	res := d.resourceFor(ptr)
	return res.vocabs.Has(vocab)
}

// draftOf returns the draft governing loc's resource.
func (s *store) draftOf(loc string) Draft {
	url, ptr := splitLocation(loc)
	d, ok := s.docs[url]
	if !ok {
		return s.defaultDraft
	}
	return d.resourceFor(ptr).draft
}

// lookup resolves a canonical location's json-pointer half against its
// document, returning the raw (still-decoded, not-yet-compiled) JSON value
// the location names.
func (s *store) lookup(loc string) (any, error) {
	url, ptr := splitLocation(loc)
	d, ok := s.docs[url]
	if !ok {
		return nil, bugf(nil, "lookup called for unloaded document %s", url)
	}
	return lookupPointer(loc, d.raw, ptr)
}

package schemac

import (
	"strings"
)

// Compiler is a JSON Schema compiler: it owns a Root Store of loaded
// documents plus the format/decoder/media-type registries that gate
// keyword lowering, and drives the compile work queue described in
// compiler.rs's Compiler::compile. A Compiler is single-owner: one active
// Compile call touches its Root Store and the caller-provided Arena, and
// neither is safe for concurrent mutation (the finished Arena is).
type Compiler struct {
	store *store
	arena *Arena

	assertFormat  bool
	assertContent bool

	formats    map[string]FormatFunc
	decoders   map[string]DecodeFunc
	mediaTypes map[string]MediaTypeFunc

	validator Validator

	metaArena   *Arena
	metaHandles map[Draft]Handle
}

// NewCompiler returns a Compiler configured with the package's built-in
// format/decoder/media-type tables and the default HTTP(S) loader,
// matching the teacher's NewCompiler default-wiring convention.
func NewCompiler() *Compiler {
	c := &Compiler{
		formats:    make(map[string]FormatFunc),
		decoders:   make(map[string]DecodeFunc),
		mediaTypes: make(map[string]MediaTypeFunc),
	}
	c.store = newStore(newLoaderRegistry(), DefaultDraft)
	c.store.compileMeta = c.compileMetaSchema
	return c
}

// compileMetaSchema compiles (once per draft, cached for the life of this
// Compiler) the meta-schema named by metaSchemaURL into a dedicated Arena, so
// the Root Store can validate a loaded document against it before trusting
// it. Compilation runs through a throwaway Compiler sharing this Compiler's
// loaders/formats/decoders/media-types but its own Root Store and work
// queue, so it never touches c.arena mid-compile (Compiler.Compile is not
// reentrant against a single Arena) and never re-triggers self-validation of
// the meta-schema against itself.
func (c *Compiler) compileMetaSchema(metaSchemaURL string) (*Arena, Handle, error) {
	draft, ok := draftFromMetaSchemaURL(metaSchemaURL)
	if !ok {
		draft = DraftUnknown
	}

	if c.metaArena == nil {
		c.metaArena = NewArena()
		c.metaHandles = make(map[Draft]Handle)
	}
	if h, ok := c.metaHandles[draft]; ok {
		return c.metaArena, h, nil
	}

	metaCompiler := NewCompiler()
	metaCompiler.store.loaders = c.store.loaders
	metaCompiler.formats = c.formats
	metaCompiler.decoders = c.decoders
	metaCompiler.mediaTypes = c.mediaTypes

	handle, err := metaCompiler.Compile(c.metaArena, metaSchemaURL)
	if err != nil {
		return nil, noHandle, err
	}
	c.metaHandles[draft] = handle
	return c.metaArena, handle, nil
}

// SetDefaultDraft sets which Draft a document uses when it carries no
// identifiable $schema.
func (c *Compiler) SetDefaultDraft(d Draft) *Compiler {
	c.store.defaultDraft = d
	return c
}

// EnableFormatAssertions makes every document treat `format` as an
// assertion rather than a bare annotation, regardless of which
// vocabularies it declares.
func (c *Compiler) EnableFormatAssertions() *Compiler {
	c.assertFormat = true
	return c
}

// EnableContentAssertions makes contentEncoding/contentMediaType/
// contentSchema (draft 7+) actually decode and validate, rather than being
// annotation-only.
func (c *Compiler) EnableContentAssertions() *Compiler {
	c.assertContent = true
	return c
}

// RegisterURLLoader installs a Loader for the given URL scheme, overriding
// any previously registered loader (including the default HTTP(S) one).
func (c *Compiler) RegisterURLLoader(scheme string, l Loader) *Compiler {
	c.store.loaders.register(scheme, l)
	return c
}

// RegisterFormat installs a custom `format` validator. It shadows any
// built-in validator of the same name for this Compiler only.
func (c *Compiler) RegisterFormat(name string, fn FormatFunc) *Compiler {
	c.formats[name] = fn
	return c
}

// RegisterDecoder installs a custom `contentEncoding` decoder, shadowing
// any built-in decoder of the same name for this Compiler only.
func (c *Compiler) RegisterDecoder(name string, fn DecodeFunc) *Compiler {
	c.decoders[name] = fn
	return c
}

// RegisterMediaType installs a custom `contentMediaType` validator,
// shadowing any built-in one of the same name for this Compiler only.
func (c *Compiler) RegisterMediaType(name string, fn MediaTypeFunc) *Compiler {
	c.mediaTypes[name] = fn
	return c
}

// SetValidator installs the collaborator the Root Store uses to validate a
// loaded document against its own meta-schema. Without one, meta-schema
// self-validation is skipped entirely (documents are still compiled; they
// are simply trusted).
func (c *Compiler) SetValidator(v Validator) *Compiler {
	c.validator = v
	c.store.validator = v
	c.store.assertMeta = v != nil
	return c
}

// AddResource pre-seeds the compiler with an already-decoded JSON document
// under url, so Compile never needs a loader to reach it. It reports
// whether this was the first registration for url: re-registering the
// exact same content under a url already in use is a no-op (false, nil);
// registering different content under a url already in use is a *BugError,
// matching the Root Store's or_insert contract (spec §4.2).
func (c *Compiler) AddResource(url string, doc any) (bool, error) {
	_, existed := c.store.docs[url]
	if _, err := c.store.addResource(url, doc); err != nil {
		return false, err
	}
	return !existed, nil
}

// Compile resolves and lowers the schema at location (an absolute URL,
// optionally followed by "#" and a JSON Pointer) into arena, returning the
// Handle of the starting location. This is a direct transliteration of
// boon::Compiler::compile: the location is enqueued first so its Handle is
// known immediately (even before the document backing it loads), then the
// FIFO queue is drained with a strict peek-before-pop discipline — each
// location is resolved and lowered while still at the front of the queue,
// and is only popped (and its Record inserted) afterward. A $ref cycle back
// to a location never triggers a second lowering pass: the location already
// has a Handle in the arena, so Arena.enqueue returns that Handle without
// scheduling new work.
func (c *Compiler) Compile(arena *Arena, location string) (Handle, error) {
	loc := location
	if !strings.Contains(loc, "#") {
		loc += "#"
	}

	c.arena = arena

	var queue []string
	startHandle := arena.enqueue(&queue, loc)
	if len(queue) == 0 {
		return startHandle, nil
	}

	for len(queue) > 0 {
		front := queue[0]
		urlPart, ptr := splitLocation(front)

		doc, err := c.store.orLoad(urlPart)
		if err != nil {
			return 0, err
		}
		v, err := lookupPointer(front, doc.raw, ptr)
		if err != nil {
			return 0, err
		}

		res := doc.resourceFor(ptr)
		rec, err := c.lowerOne(v, front, res, urlPart, &queue)
		if err != nil {
			return 0, err
		}

		popped := queue[0]
		queue = queue[1:]
		if err := arena.insert(popped, rec); err != nil {
			return 0, err
		}
	}

	return startHandle, nil
}

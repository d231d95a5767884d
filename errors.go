package schemac

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that have no useful extra context.
var (
	// ErrNoLoaderRegistered is returned when no loader is registered for a URL scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrQueueEmpty signals an internal invariant violation: the work queue was
	// expected to be non-empty (e.g. right after a successful enqueue).
	ErrQueueEmpty = errors.New("compiler work queue unexpectedly empty")

	// ErrHandleMissing signals an internal invariant violation: a location was
	// looked up in the arena after enqueue but has no handle.
	ErrHandleMissing = errors.New("arena handle missing for enqueued location")

	// errIPv6AddressNotEnclosed and errInvalidIPv6Address are returned by
	// parseFormatURL (formats.go) when a uri/uri-reference/uri-template
	// format value names an IPv6 host net/url's own parser would accept
	// but RFC 3986 would not (missing brackets, or a malformed address).
	errIPv6AddressNotEnclosed = errors.New("ipv6 address must be enclosed in brackets")
	errInvalidIPv6Address     = errors.New("invalid ipv6 address")
)

// BugError wraps any invariant violation that should be impossible. It is the
// Go analogue of the compiler's CompileError::Bug case.
type BugError struct {
	Detail string
	Err    error
}

func (e *BugError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jsonschema compiler bug, please report: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("jsonschema compiler bug, please report: %s", e.Detail)
}

func (e *BugError) LongError() string { return e.Error() }

func (e *BugError) Unwrap() error { return e.Err }

func bug(detail string) error { return &BugError{Detail: detail} }

func bugf(err error, format string, args ...any) error {
	return &BugError{Detail: fmt.Sprintf(format, args...), Err: err}
}

// ParseURLError is returned when a reference or resource URL could not be parsed.
type ParseURLError struct {
	URL string
	Err error
}

func (e *ParseURLError) Error() string { return fmt.Sprintf("error parsing url %q", e.URL) }
func (e *ParseURLError) LongError() string {
	return fmt.Sprintf("error parsing url %q: %v", e.URL, e.Err)
}
func (e *ParseURLError) Unwrap() error { return e.Err }

// LoadURLError is returned when a registered loader failed to fetch a document.
type LoadURLError struct {
	URL string
	Err error
}

func (e *LoadURLError) Error() string { return fmt.Sprintf("error loading %q", e.URL) }
func (e *LoadURLError) LongError() string {
	return fmt.Sprintf("error loading %q: %v", e.URL, e.Err)
}
func (e *LoadURLError) Unwrap() error { return e.Err }

// UnsupportedURLError is returned when a URL's scheme has no registered loader.
type UnsupportedURLError struct {
	URL string
}

func (e *UnsupportedURLError) Error() string { return fmt.Sprintf("loading %q unsupported", e.URL) }
func (e *UnsupportedURLError) LongError() string {
	return fmt.Sprintf("loading %q unsupported: %v", e.URL, ErrNoLoaderRegistered)
}
func (e *UnsupportedURLError) Unwrap() error { return ErrNoLoaderRegistered }

// InvalidMetaSchemaError is returned when $schema does not name a recognized draft.
type InvalidMetaSchemaError struct {
	URL string
}

func (e *InvalidMetaSchemaError) Error() string { return fmt.Sprintf("invalid $schema in %q", e.URL) }
func (e *InvalidMetaSchemaError) LongError() string {
	return fmt.Sprintf("%q's $schema does not resolve to a recognized or loadable meta-schema", e.URL)
}

// MetaSchemaCycleError is returned when following $schema chains cycles back on itself.
type MetaSchemaCycleError struct {
	URL string
}

func (e *MetaSchemaCycleError) Error() string {
	return fmt.Sprintf("cycle in resolving $schema in %q", e.URL)
}
func (e *MetaSchemaCycleError) LongError() string {
	return fmt.Sprintf("resolving $schema starting from %q revisits a URL already seen in the same chain", e.URL)
}

// UnsupportedVocabularyError is returned when a document requires a vocabulary this
// compiler does not recognize.
type UnsupportedVocabularyError struct {
	URL        string
	Vocabulary string
}

func (e *UnsupportedVocabularyError) Error() string {
	return fmt.Sprintf("unsupported vocabulary %q in %q", e.Vocabulary, e.URL)
}
func (e *UnsupportedVocabularyError) LongError() string {
	return fmt.Sprintf("%q requires vocabulary %q, which is unknown and marked required ($vocabulary: true)", e.URL, e.Vocabulary)
}

// NotValidError wraps a failure to validate a document against its meta-schema.
type NotValidError struct {
	URL string
	Err error
}

func (e *NotValidError) Error() string { return fmt.Sprintf("%q not valid against metaschema", e.URL) }
func (e *NotValidError) LongError() string {
	return fmt.Sprintf("%q not valid against metaschema: %v", e.URL, e.Err)
}
func (e *NotValidError) Unwrap() error { return e.Err }

// InvalidIDError is returned when a $id/id value is not a usable URI reference.
type InvalidIDError struct {
	Location string
}

func (e *InvalidIDError) Error() string { return fmt.Sprintf("invalid $id at %s", e.Location) }
func (e *InvalidIDError) LongError() string {
	return fmt.Sprintf("$id at %s is not a usable URI reference", e.Location)
}

// InvalidAnchorError is returned when an $anchor/$dynamicAnchor value is malformed.
type InvalidAnchorError struct {
	Location string
}

func (e *InvalidAnchorError) Error() string { return fmt.Sprintf("invalid $anchor at %s", e.Location) }
func (e *InvalidAnchorError) LongError() string {
	return fmt.Sprintf("$anchor/$dynamicAnchor at %s is not a valid anchor name", e.Location)
}

// DuplicateIDError is returned when the same $id resolves twice within a document.
type DuplicateIDError struct {
	URL string
	ID  string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate $id %q in %q", e.ID, e.URL)
}
func (e *DuplicateIDError) LongError() string {
	return fmt.Sprintf("$id %q is declared more than once while collecting resources in %q", e.ID, e.URL)
}

// DuplicateAnchorError is returned when the same anchor name is registered twice
// within one resource's scope.
type DuplicateAnchorError struct {
	URL    string
	Anchor string
}

func (e *DuplicateAnchorError) Error() string {
	return fmt.Sprintf("duplicate anchor %q in %q", e.Anchor, e.URL)
}
func (e *DuplicateAnchorError) LongError() string {
	return fmt.Sprintf("anchor %q is registered more than once within the same resource scope in %q", e.Anchor, e.URL)
}

// InvalidJSONPointerError is returned when a canonical location's fragment is not a
// syntactically valid JSON pointer.
type InvalidJSONPointerError struct {
	Location string
}

func (e *InvalidJSONPointerError) Error() string {
	return fmt.Sprintf("invalid json-pointer %s", e.Location)
}
func (e *InvalidJSONPointerError) LongError() string {
	return fmt.Sprintf("the fragment of %s is not a syntactically valid RFC 6901 json-pointer", e.Location)
}

// JSONPointerNotFoundError is returned when a syntactically valid pointer has no
// target within the document.
type JSONPointerNotFoundError struct {
	Location string
}

func (e *JSONPointerNotFoundError) Error() string {
	return fmt.Sprintf("json-pointer in %s not found", e.Location)
}
func (e *JSONPointerNotFoundError) LongError() string {
	return fmt.Sprintf("the json-pointer in %s is syntactically valid but has no target in the document", e.Location)
}

// AnchorNotFoundError is returned when an anchor fragment does not resolve within
// the schema it was looked up against.
type AnchorNotFoundError struct {
	SchemaURL string
	Anchor    string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor %q not found in schema %q", e.Anchor, e.SchemaURL)
}
func (e *AnchorNotFoundError) LongError() string {
	return fmt.Sprintf("no $anchor, $dynamicAnchor, or $recursiveAnchor named %q is registered anywhere in %q", e.Anchor, e.SchemaURL)
}

// InvalidRegexError is returned when a pattern or patternProperties key fails to
// compile as a regular expression.
type InvalidRegexError struct {
	Location string
	Regex    string
	Err      error
}

func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid regex %q at %s", e.Regex, e.Location)
}
func (e *InvalidRegexError) LongError() string {
	return fmt.Sprintf("invalid regex %q at %s: %v", e.Regex, e.Location, e.Err)
}
func (e *InvalidRegexError) Unwrap() error { return e.Err }

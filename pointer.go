package schemac

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// splitLocation splits a canonical location ("<absolute-url>#<json-pointer>")
// into its URL and pointer halves. The pointer half always starts with "#"
// is stripped; callers get the bare "/a/b" form (or "" for the document
// root).
func splitLocation(loc string) (urlPart, ptr string) {
	i := strings.IndexByte(loc, '#')
	if i < 0 {
		return loc, ""
	}
	return loc[:i], loc[i+1:]
}

// childLocation appends a JSON Pointer path segment to a canonical location,
// escaping it per RFC 6901 first. This is the Go analogue of the compiler's
// `loc + "/" + token` enqueue helper, used every time a keyword's value is
// itself a schema.
func childLocation(loc string, tokens ...string) string {
	urlPart, ptr := splitLocation(loc)
	escaped := make([]string, len(tokens))
	for i, t := range tokens {
		escaped[i] = escapeToken(t)
	}
	suffix := strings.Join(escaped, "/")
	if ptr == "" {
		return urlPart + "#/" + suffix
	}
	return urlPart + "#" + ptr + "/" + suffix
}

func escapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	tok = strings.ReplaceAll(tok, "/", "~1")
	return tok
}

// lookupPointer resolves a JSON Pointer fragment (without the leading "#")
// against a decoded JSON document, returning JSONPointerNotFoundError if the
// path does not exist and InvalidJSONPointerError if the fragment itself is
// malformed. loc is the full canonical location, used only for error
// messages.
func lookupPointer(loc string, doc any, ptr string) (any, error) {
	if ptr == "" {
		return doc, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, &InvalidJSONPointerError{Location: loc}
	}
	tokens := jsonpointer.Parse(ptr)
	cur := doc
	for _, tok := range tokens {
		decoded, err := url.PathUnescape(tok)
		if err != nil {
			return nil, &InvalidJSONPointerError{Location: loc}
		}
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[decoded]
			if !ok {
				return nil, &JSONPointerNotFoundError{Location: loc}
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(decoded)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, &JSONPointerNotFoundError{Location: loc}
			}
			cur = v[idx]
		default:
			return nil, &JSONPointerNotFoundError{Location: loc}
		}
	}
	return cur, nil
}

// resolveURL joins a reference string against a base URL the way $ref /
// $id resolution must: absolute references pass through untouched,
// relative ones resolve against base, and the fragment (if any) stays
// attached to the result for callers such as store.resolve to split off.
func resolveURL(base, ref string) (string, error) {
	if ref == "" {
		return base, nil
	}
	if isAbsoluteURI(ref) {
		return ref, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", &ParseURLError{URL: base, Err: err}
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", &ParseURLError{URL: ref, Err: err}
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

func isAbsoluteURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// splitRef separates a reference string into its pre-fragment URI and its
// fragment (JSON pointer or plain-name anchor), dropping the "#" itself.
func splitRef(ref string) (uri, fragment string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ref, ""
}

func isJSONPointerFragment(s string) bool {
	return strings.HasPrefix(s, "/")
}

func indexToken(i int) string { return strconv.Itoa(i) }

// Package schemac compiles JSON Schema documents (drafts 4, 6, 7, 2019-09
// and 2020-12) into a flat, handle-addressed Arena of Records. It resolves
// $ref/$dynamicRef across documents, gates keywords by the active
// $vocabulary, and terminates cyclic schema graphs by Handle identity
// rather than by recursion depth. A minimal reference Validator is bundled
// so the compiled Arena can be exercised end-to-end without a separate
// validation library.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package schemac

package schemac

// Short vocabulary names, used internally as VocabSet keys; knownVocabURIs
// maps each $vocabulary URI this package knows to one of them.
const (
	vocabCore              = "core"
	vocabApplicator        = "applicator"
	vocabValidation        = "validation"
	vocabFormatAnnotation  = "format-annotation"
	vocabFormatAssertion   = "format-assertion"
	vocabFormat            = "format" // draft 2019-09 spells it without -annotation/-assertion
	vocabContent           = "content"
	vocabUnevaluated       = "unevaluated"
	vocabMetaData          = "meta-data"
)

// VocabSet records which vocabularies are active for a given resource.
// Every known vocabulary a $vocabulary block lists is active, whether it is
// marked true (required) or false (optional); an unknown one is skipped
// when optional and rejected when required (see vocabSetFromMeta).
type VocabSet map[string]bool

func newVocabSet() VocabSet { return make(VocabSet) }

// Has reports whether the named vocabulary is active.
func (v VocabSet) Has(name string) bool { return v[name] }

func (v VocabSet) with(names ...string) VocabSet {
	for _, n := range names {
		v[n] = true
	}
	return v
}

// allVocabSet is used for drafts earlier than 2019-09, which have no
// $vocabulary keyword and instead implicitly enable everything this
// compiler supports.
func allVocabSet() VocabSet {
	return newVocabSet().with(
		vocabCore, vocabApplicator, vocabValidation, vocabFormat,
		vocabContent, vocabMetaData,
	)
}

func vocabSet2019() VocabSet {
	return newVocabSet().with(
		vocabCore, vocabApplicator, vocabValidation, vocabFormat,
		vocabContent, vocabMetaData,
	)
}

func vocabSet2020() VocabSet {
	return newVocabSet().with(
		vocabCore, vocabApplicator, vocabValidation, vocabFormatAnnotation,
		vocabContent, vocabUnevaluated, vocabMetaData,
	)
}

// knownVocabURIs maps the URI a $vocabulary block names to this package's
// short internal vocabulary name. Any URI not in this table is unknown;
// whether that is fatal depends on whether the document marked it required
// (see vocabSetFromMeta).
var knownVocabURIs = map[string]string{
	"https://json-schema.org/draft/2019-09/vocab/core":               vocabCore,
	"https://json-schema.org/draft/2019-09/vocab/applicator":         vocabApplicator,
	"https://json-schema.org/draft/2019-09/vocab/validation":        vocabValidation,
	"https://json-schema.org/draft/2019-09/vocab/format":             vocabFormat,
	"https://json-schema.org/draft/2019-09/vocab/content":            vocabContent,
	"https://json-schema.org/draft/2019-09/vocab/meta-data":          vocabMetaData,
	"https://json-schema.org/draft/2020-12/vocab/core":               vocabCore,
	"https://json-schema.org/draft/2020-12/vocab/applicator":        vocabApplicator,
	"https://json-schema.org/draft/2020-12/vocab/validation":        vocabValidation,
	"https://json-schema.org/draft/2020-12/vocab/format-annotation": vocabFormatAnnotation,
	"https://json-schema.org/draft/2020-12/vocab/format-assertion":  vocabFormatAssertion,
	"https://json-schema.org/draft/2020-12/vocab/content":           vocabContent,
	"https://json-schema.org/draft/2020-12/vocab/unevaluated":       vocabUnevaluated,
	"https://json-schema.org/draft/2020-12/vocab/meta-data":         vocabMetaData,
}

// vocabSetFromMeta builds a VocabSet from a decoded $vocabulary object
// (map[string]any of URI -> bool, as produced by the JSON decoder). url
// identifies the meta-schema for error reporting.
func vocabSetFromMeta(url string, vocabulary map[string]any) (VocabSet, error) {
	vs := newVocabSet()
	for uri, rawRequired := range vocabulary {
		required, _ := rawRequired.(bool)
		name, known := knownVocabURIs[uri]
		if !known {
			if required {
				return nil, &UnsupportedVocabularyError{URL: url, Vocabulary: uri}
			}
			continue
		}
		vs[name] = true
	}
	return vs, nil
}

// formatVocabName returns the vocabulary name that gates `format` assertion
// behavior for a given draft: pre-2019 drafts fold it into "core", which is
// always active for them, so format is asserted in every pre-2019 document;
// 2019-09 uses a single "format" vocabulary, which its default set
// includes; and 2020-12 asserts only under "format-assertion", which its
// default set does not include. EnableFormatAssertions asserts format for
// every draft.
func formatVocabName(d Draft) string {
	switch {
	case d < Draft2019_09:
		return vocabCore
	case d == Draft2019_09:
		return vocabFormat
	default:
		return vocabFormatAssertion
	}
}

// unevaluatedVocabName returns the vocabulary name that gates
// unevaluatedItems/unevaluatedProperties: folded into "applicator" for
// 2019-09, split into its own "unevaluated" vocabulary from 2020-12 on.
func unevaluatedVocabName(d Draft) string {
	if d == Draft2019_09 {
		return vocabApplicator
	}
	return vocabUnevaluated
}

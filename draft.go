package schemac

// Draft identifies one of the JSON Schema specification versions this
// compiler understands. The zero value is not a valid draft; use
// DraftUnknown to detect an unset field.
type Draft int

const (
	DraftUnknown Draft = iota
	Draft4
	Draft6
	Draft7
	Draft2019_09
	Draft2020_12
)

// DefaultDraft is used when a document carries no $schema and the caller
// registered no override, matching the teacher's own "latest wins" default.
const DefaultDraft = Draft2020_12

func (d Draft) String() string {
	switch d {
	case Draft4:
		return "draft4"
	case Draft6:
		return "draft6"
	case Draft7:
		return "draft7"
	case Draft2019_09:
		return "2019-09"
	case Draft2020_12:
		return "2020-12"
	default:
		return "unknown"
	}
}

// draftInfo is the static, per-draft behavior table. It never changes once
// built, so a package-level map keyed by Draft is safe to share.
type draftInfo struct {
	draft         Draft
	metaSchemaURL string
	defaultVocabs VocabSet // used when the document has no $vocabulary
	hasVocabulary bool     // drafts >= 2019-09 support $vocabulary
}

var draftTable = map[Draft]*draftInfo{
	Draft4: {
		draft:         Draft4,
		metaSchemaURL: "http://json-schema.org/draft-04/schema#",
		defaultVocabs: allVocabSet(),
	},
	Draft6: {
		draft:         Draft6,
		metaSchemaURL: "http://json-schema.org/draft-06/schema#",
		defaultVocabs: allVocabSet(),
	},
	Draft7: {
		draft:         Draft7,
		metaSchemaURL: "http://json-schema.org/draft-07/schema#",
		defaultVocabs: allVocabSet(),
	},
	Draft2019_09: {
		draft:         Draft2019_09,
		metaSchemaURL: "https://json-schema.org/draft/2019-09/schema",
		defaultVocabs: vocabSet2019(),
		hasVocabulary: true,
	},
	Draft2020_12: {
		draft:         Draft2020_12,
		metaSchemaURL: "https://json-schema.org/draft/2020-12/schema",
		defaultVocabs: vocabSet2020(),
		hasVocabulary: true,
	},
}

// metaSchemaURLsByDraft maps every known historical meta-schema URL (with and
// without the trailing "#") to its draft, so $schema lookups succeed
// regardless of how the document spells it.
var metaSchemaURLsByDraft = buildMetaSchemaURLIndex()

func buildMetaSchemaURLIndex() map[string]Draft {
	idx := make(map[string]Draft, len(draftTable)*2)
	for draft, info := range draftTable {
		idx[info.metaSchemaURL] = draft
		trimmed := trimFragmentHash(info.metaSchemaURL)
		idx[trimmed] = draft
	}
	return idx
}

func trimFragmentHash(u string) string {
	if len(u) > 0 && u[len(u)-1] == '#' {
		return u[:len(u)-1]
	}
	return u + "#"
}

// draftFromMetaSchemaURL resolves a $schema value to a known Draft. The
// second return is false when the URL names no draft this compiler knows
// about (store.resolveDialect then loads the URL as a custom meta-schema and
// follows its own $schema).
func draftFromMetaSchemaURL(u string) (Draft, bool) {
	d, ok := metaSchemaURLsByDraft[u]
	return d, ok
}

func (d Draft) info() *draftInfo {
	info, ok := draftTable[d]
	if !ok {
		return draftTable[DefaultDraft]
	}
	return info
}

// supportsVocabulary reports whether this draft's documents are expected to
// declare $vocabulary explicitly. Pre-2019 drafts implicitly enable every
// vocabulary this compiler supports.
func (d Draft) supportsVocabulary() bool { return d.info().hasVocabulary }

package schemac

// Arena is the append-only store of compiled Records. Its defining property
// is that a Handle, once issued, never moves and never changes meaning:
// enqueue reserves a slot and returns its Handle immediately, before the
// Record at that slot is populated, which is what lets a $ref cycle close
// on itself without the compiler recursing into it a second time.
type Arena struct {
	records []*Record
	byLoc   map[string]Handle
}

// NewArena returns an empty Arena ready for use by a Compiler.
func NewArena() *Arena {
	return &Arena{byLoc: make(map[string]Handle)}
}

// Len reports how many records the arena holds, including reserved-but-not-
// yet-populated ones.
func (a *Arena) Len() int { return len(a.records) }

// Record returns the compiled Record at h. It panics if h is out of range,
// which can only happen on a programming error (an invalid Handle leaking
// out of this package), never on malformed input.
func (a *Arena) Record(h Handle) *Record {
	return a.records[h]
}

// Lookup returns the Handle previously assigned to loc, if any.
func (a *Arena) Lookup(loc string) (Handle, bool) {
	h, ok := a.byLoc[loc]
	return h, ok
}

// enqueue reserves a slot for loc and appends loc to queue so the compiler
// will visit it, unless loc already has a Handle (the common case for a
// $ref back into already-seen territory) in which case the existing Handle
// is returned and queue is untouched. This is the single mechanism by which
// cyclic schema graphs terminate: the second time a location is enqueued,
// no new work is scheduled.
func (a *Arena) enqueue(queue *[]string, loc string) Handle {
	if h, ok := a.byLoc[loc]; ok {
		return h
	}
	h := Handle(len(a.records))
	a.records = append(a.records, nil) // reserved, populated later by insert
	a.byLoc[loc] = h
	*queue = append(*queue, loc)
	return h
}

// insert populates the Record previously reserved for loc. It is a bug to
// call insert for a location that was never enqueued.
func (a *Arena) insert(loc string, rec *Record) error {
	h, ok := a.byLoc[loc]
	if !ok {
		return bugf(nil, "insert called for unenqueued location %s", loc)
	}
	a.records[h] = rec
	return nil
}

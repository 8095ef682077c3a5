package typeset

// ID is an index into a DeferredTable. Once issued, an ID is stable for the
// program's lifetime: entries are never relocated and ids are never reused
type ID int

// NarrowingMode distinguishes entries that may be widened by subsequent
// usage (a local variable's provisional type) from entries that are fixed
// once declared (an interface/type-alias declaration).
type NarrowingMode int

const (
	// Fixed entries never change after they are set; only check_expect on a
	// Narrowing entry is allowed to call SetType again.
	Fixed NarrowingMode = iota
	// Narrowing entries may be widened by SetType as the checker
	// encounters more uses of the value.
	Narrowing
)

type entry struct {
	Name       string
	Type       Type
	NominalIDs []ID
	Mode       NarrowingMode
}

// DeferredTable is the process-wide, append-only table of named, lazily
// resolved types. It is the arena that makes
// recursive interface types and narrowing locals representable without
// cyclic ownership between Type values: a Deferred only ever holds a
// pointer to the table plus an integer id.
//
// The table is not concurrency-safe; one checking session owns exactly one
// DeferredTable and all access happens on a single
// goroutine, including the reentrant recursion triggered by a require()
// resolver callback.
type DeferredTable struct {
	entries []entry
}

// NewDeferredTable creates an empty table.
func NewDeferredTable() *DeferredTable {
	return &DeferredTable{}
}

// Reserve allocates a new entry with a placeholder type, returning its id
// before the real type is known. This is how a recursive interface reserves
// its own name (e.g. `interface T : { next: T }`) before T's body is
// checked: the body's occurrences of T resolve to Deferred{ID: id}, and
// once the body finishes, SetType installs the real Table type.
func (t *DeferredTable) Reserve(name string, mode NarrowingMode) ID {
	id := ID(len(t.entries))
	t.entries = append(t.entries, entry{Name: name, Type: Void{}, Mode: mode})
	return id
}

// New allocates a new entry with an initial type already known.
func (t *DeferredTable) New(name string, initial Type, mode NarrowingMode) ID {
	id := ID(len(t.entries))
	t.entries = append(t.entries, entry{Name: name, Type: initial, Mode: mode})
	return id
}

// NewGenericParam allocates a Nominal-bearing entry for one generic
// parameter with the given bound, returning both the id and a ready-to-use
// Nominal referencing it.
func (t *DeferredTable) NewGenericParam(name string, bound Type) (ID, Nominal) {
	id := t.New(name, bound, Fixed)
	return id, Nominal{Ref: Deferred{Table: t, ID: id}}
}

func (t *DeferredTable) entry(id ID) (entry, bool) {
	if int(id) < 0 || int(id) >= len(t.entries) {
		return entry{}, false
	}
	return t.entries[id], true
}

// TypeOf returns the current type bound to id. Out-of-range ids (which
// should never occur for a well-formed program) resolve to Any rather than
// panicking, matching the checker's "never throw on user input" discipline.
func (t *DeferredTable) TypeOf(id ID) Type {
	e, ok := t.entry(id)
	if !ok {
		return Any{}
	}
	return e.Type
}

// NameOf returns the entry's name.
func (t *DeferredTable) NameOf(id ID) string {
	e, ok := t.entry(id)
	if !ok {
		return ""
	}
	return e.Name
}

// IsNarrowing reports whether id's entry may still be widened.
func (t *DeferredTable) IsNarrowing(id ID) bool {
	e, ok := t.entry(id)
	return ok && e.Mode == Narrowing
}

// SetType rewrites id's bound type in place. This is the only mutation the
// table supports after an entry is created: narrowing happens during the
// same sequential checking pass that issues reads, so a stale read is
// impossible.
func (t *DeferredTable) SetType(id ID, ty Type) {
	if int(id) < 0 || int(id) >= len(t.entries) {
		return
	}
	t.entries[id].Type = ty
}

// Deferred builds a Deferred value referencing id in this table, with
// optional type arguments.
func (t *DeferredTable) Deferred(id ID, args ...Type) Deferred {
	return Deferred{Table: t, ID: id, Args: args}
}

// Package index implements the document index: the aggregate store of
// documentation entities, the ingestion/classification loop, and the
// reference resolver that wires parent/child relationships across
// arbitrarily-ordered input.
package index

import (
	"sort"
	"strings"

	"github.com/jward/arbor/internal/bus"
	"github.com/jward/arbor/internal/diag"
	"github.com/jward/arbor/internal/doc"
)

// resolveTopic is the bus topic namespace for resolution events.
const resolveTopic = "resolve:"

// Index is the aggregate store for one documentation build: deduplicated
// name-keyed maps per top-level category plus a catch-all for entities that
// fit no category. Within each map the first entity to claim a name wins;
// later duplicates are silently dropped.
//
// An Index is mutated by a single goroutine; bus callbacks run synchronously
// on the same stack, so no locking is used.
type Index struct {
	Classes   map[string]*doc.Entity
	Modules   map[string]*doc.Entity
	Functions map[string]*doc.Entity
	Constants map[string]*doc.Entity
	Misc      []*doc.Entity

	bus     *bus.Bus[*doc.Entity]
	sink    diag.Sink
	verbose bool

	duplicatesDropped int
	unresolvedWalks   int
}

// Option configures an Index.
type Option func(*Index)

// WithDiagnostics sets the sink receiving warn-and-continue diagnostics.
func WithDiagnostics(sink diag.Sink) Option {
	return func(ix *Index) {
		if sink != nil {
			ix.sink = sink
		}
	}
}

// WithVerbose enables informational diagnostics for dropped duplicates and
// misc-routed entities.
func WithVerbose(verbose bool) Option {
	return func(ix *Index) {
		ix.verbose = verbose
	}
}

// New returns an empty Index.
func New(opts ...Option) *Index {
	ix := &Index{
		Classes:   make(map[string]*doc.Entity),
		Modules:   make(map[string]*doc.Entity),
		Functions: make(map[string]*doc.Entity),
		Constants: make(map[string]*doc.Entity),
		bus:       bus.New[*doc.Entity](),
		sink:      diag.Nop{},
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Add classifies and stores one entity. Entities marked ignored are dropped
// entirely. Classes and modules additionally publish a resolution event
// under their fully-qualified name, which attaches any children waiting on
// that name. Add never fails; anomalies are absorbed and reported to the
// diagnostics sink.
func (ix *Index) Add(e *doc.Entity) {
	if e == nil || e.IsIgnored {
		return
	}
	switch {
	case e.IsClass:
		ix.addNamed(ix.Classes, "class", e, true)
	case e.IsModule:
		ix.addNamed(ix.Modules, "module", e, true)
	case e.IsFunction:
		ix.addNamed(ix.Functions, "function", e, false)
	case e.IsConstant, e.IsEnum:
		ix.addNamed(ix.Constants, "constant", e, false)
	default:
		ix.Misc = append(ix.Misc, e)
		if ix.verbose {
			ix.sink.Infof("entity %q has no recognized kind, routed to misc", e.Name)
		}
	}
}

func (ix *Index) addNamed(m map[string]*doc.Entity, category string, e *doc.Entity, publish bool) {
	if _, claimed := m[e.Name]; claimed {
		ix.duplicatesDropped++
		if ix.verbose {
			ix.sink.Infof("duplicate %s %q dropped, first definition wins", category, e.Name)
		}
		return
	}
	m[e.Name] = e
	if publish {
		// The published name is parent-prefixed with whatever parent was
		// declared at this point, which may itself still be pending.
		fqn := e.Name
		if e.ParentName != "" {
			fqn = e.ParentName + "." + e.Name
		}
		ix.bus.Emit(resolveTopic+fqn, e)
	}
}

// topLevel finds a top-level class or module by bare name. Classes are
// consulted before modules.
func (ix *Index) topLevel(name string) *doc.Entity {
	if e, ok := ix.Classes[name]; ok {
		return e
	}
	if e, ok := ix.Modules[name]; ok {
		return e
	}
	return nil
}

// Pending returns the sorted names whose resolutions are still waiting for
// a top-level declaration. Every name has at least one waiting child; the
// list may be non-empty after all comments are ingested, which is a valid
// terminal state.
func (ix *Index) Pending() []string {
	var names []string
	for _, topic := range ix.bus.Topics() {
		if strings.HasPrefix(topic, resolveTopic) {
			names = append(names, strings.TrimPrefix(topic, resolveTopic))
		}
	}
	sort.Strings(names)
	return names
}

// PendingCount returns the number of resolutions still waiting for a
// top-level name to appear.
func (ix *Index) PendingCount() int {
	n := 0
	for _, topic := range ix.bus.Topics() {
		if strings.HasPrefix(topic, resolveTopic) {
			n += ix.bus.OnceCount(topic)
		}
	}
	return n
}

// DuplicatesDropped returns how many entities were discarded because their
// name was already claimed in the same category.
func (ix *Index) DuplicatesDropped() int {
	return ix.duplicatesDropped
}

// UnresolvedWalks returns how many resolutions found their top-level name
// but stalled on a missing intermediate path segment. Those resolutions
// never complete.
func (ix *Index) UnresolvedWalks() int {
	return ix.unresolvedWalks
}

package index

import (
	"strings"

	"github.com/jward/arbor/internal/doc"
)

// Resolution is the deferred handle returned by Resolve. It completes, if
// ever, when the named entity becomes reachable; a resolution whose name is
// never declared stays pending indefinitely.
type Resolution struct {
	// Name is the reference being resolved, bare or dotted.
	Name string

	done   bool
	target *doc.Entity
}

// Done reports whether the resolution has completed.
func (r *Resolution) Done() bool {
	return r.done
}

// Target returns the resolved entity, or nil while pending.
func (r *Resolution) Target() *doc.Entity {
	return r.target
}

// Resolve resolves a name of the form "A" or "A.B.C" to the entity it
// designates and invokes fn with the result. The head segment must be a
// known top-level class or module; if it is not known yet, a one-shot
// subscription defers the walk until some later comment declares it. Each
// remaining segment is looked up as the earliest-discovered child carrying
// that exact name (first definition wins).
//
// Resolution is asynchronous from the caller's point of view: the returned
// handle is available immediately and completion may happen on a later
// ingestion turn. A missing intermediate segment leaves the resolution
// permanently incomplete; no error is raised and no retry is attempted.
func (ix *Index) Resolve(name string, fn func(*doc.Entity)) *Resolution {
	res := &Resolution{Name: name}
	segments := strings.Split(name, ".")

	deliver := func(head *doc.Entity) {
		target := ix.walk(head, segments[1:])
		if target == nil {
			return
		}
		res.done = true
		res.target = target
		if fn != nil {
			fn(target)
		}
	}

	if head := ix.topLevel(segments[0]); head != nil {
		deliver(head)
		return res
	}
	ix.bus.Once(resolveTopic+segments[0], deliver)
	return res
}

// walk descends from head through the remaining path segments strictly
// left-to-right. Returns nil when a segment is missing at walk time; the
// caller's resolution then never completes (re-subscribing per segment is a
// known gap, deliberately not implemented).
func (ix *Index) walk(head *doc.Entity, rest []string) *doc.Entity {
	e := head
	for _, segment := range rest {
		child := e.FirstChild(segment)
		if child == nil {
			ix.unresolvedWalks++
			return nil
		}
		e = child
	}
	return e
}

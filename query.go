package arbor

import (
	"strings"

	"github.com/jward/arbor/internal/doc"
	"github.com/jward/arbor/internal/index"
)

// QueryBuilder provides read access to a built document index.
type QueryBuilder struct {
	index *index.Index
}

// Entity looks up an entity by bare top-level name or dotted path. The head
// segment is searched among top-level classes, modules, functions, and
// constants in that order; each further segment is the earliest-discovered
// child with that name. Returns nil, not an error, when nothing matches.
func (q *QueryBuilder) Entity(path string) *doc.Entity {
	segments := strings.Split(path, ".")

	e := q.topLevel(segments[0])
	if e == nil {
		return nil
	}
	for _, segment := range segments[1:] {
		if e = e.FirstChild(segment); e == nil {
			return nil
		}
	}
	return e
}

func (q *QueryBuilder) topLevel(name string) *doc.Entity {
	for _, m := range []map[string]*doc.Entity{
		q.index.Classes, q.index.Modules, q.index.Functions, q.index.Constants,
	} {
		if e, ok := m[name]; ok {
			return e
		}
	}
	return nil
}

// Children returns the children of the entity at path in discovery order,
// or nil when the entity does not exist.
func (q *QueryBuilder) Children(path string) []*doc.Entity {
	e := q.Entity(path)
	if e == nil {
		return nil
	}
	return e.Children()
}

// ChildrenNamed returns all children named name under the entity at path.
func (q *QueryBuilder) ChildrenNamed(path, name string) []*doc.Entity {
	e := q.Entity(path)
	if e == nil {
		return nil
	}
	return e.ChildrenNamed(name)
}

// FirstChild returns the earliest-discovered child named name under the
// entity at path, or nil.
func (q *QueryBuilder) FirstChild(path, name string) *doc.Entity {
	e := q.Entity(path)
	if e == nil {
		return nil
	}
	return e.FirstChild(name)
}

// LastChild returns the latest-discovered child named name under the
// entity at path, or nil.
func (q *QueryBuilder) LastChild(path, name string) *doc.Entity {
	e := q.Entity(path)
	if e == nil {
		return nil
	}
	return e.LastChild(name)
}

// Pending returns the sorted names still waiting for a top-level
// declaration.
func (q *QueryBuilder) Pending() []string {
	return q.index.Pending()
}

// Resolve exposes the reference resolver for standalone path lookups. The
// callback fires when (and if) the name resolves; the returned handle is
// available immediately.
func (q *QueryBuilder) Resolve(name string, fn func(*doc.Entity)) *index.Resolution {
	return q.index.Resolve(name, fn)
}

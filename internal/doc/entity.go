// Package doc defines the documentation entity record: one documented code
// element derived from a single comment, with its metadata and its place in
// the parent/child forest.
package doc

// Param describes one documented parameter.
type Param struct {
	Name        string
	Types       []string
	Description string
}

// Return describes a documented return value.
type Return struct {
	Types       []string
	Description string
}

// Entity is the typed record produced from one comment's tag list.
//
// Kind flags are not mutually exclusive in representation; well-formed tag
// data sets exactly one, and Kind() computes the primary kind by priority
// for classification.
type Entity struct {
	// Name may stay empty until a name tag is seen.
	Name string
	// ParentName is the declared parent reference, a bare name or dotted
	// path, or empty for a root entity.
	ParentName string

	IsClass    bool
	IsModule   bool
	IsFunction bool
	IsConstant bool
	IsEnum     bool
	IsIgnored  bool
	IsPrivate  bool

	Types       []string
	Params      []Param
	Return      *Return
	Default     string
	See         string
	Description string
	// Body is the comment body with markers stripped; Source is the raw
	// comment text as it appeared in the file.
	Body   string
	Source string

	File string
	Line int

	parent   *Entity
	children []*Entity
}

// AddChild appends c to e's children and sets c's parent back-reference,
// both together. A child already claimed by some parent is never
// re-parented; in that case AddChild reports false and changes nothing.
func (e *Entity) AddChild(c *Entity) bool {
	if c == nil || c == e || c.parent != nil {
		return false
	}
	c.parent = e
	e.children = append(e.children, c)
	return true
}

// Parent returns the owning entity, or nil for a root.
func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns the child sequence in discovery order. The returned
// slice is the entity's own; callers must not mutate it.
func (e *Entity) Children() []*Entity {
	return e.children
}

// ChildrenNamed returns all children named name, in discovery order.
// The result is empty, not nil-vs-error, when nothing matches.
func (e *Entity) ChildrenNamed(name string) []*Entity {
	var out []*Entity
	for _, c := range e.children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the earliest-discovered child named name, or nil.
func (e *Entity) FirstChild(name string) *Entity {
	for _, c := range e.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// LastChild returns the latest-discovered child named name, or nil.
func (e *Entity) LastChild(name string) *Entity {
	for i := len(e.children) - 1; i >= 0; i-- {
		if e.children[i].Name == name {
			return e.children[i]
		}
	}
	return nil
}

// QualifiedName returns the dotted path from the entity's outermost
// attached ancestor down to the entity itself. An unattached entity's
// qualified name is its own name.
func (e *Entity) QualifiedName() string {
	if e.parent == nil {
		return e.Name
	}
	return e.parent.QualifiedName() + "." + e.Name
}

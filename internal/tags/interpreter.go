package tags

import (
	"github.com/jward/arbor/internal/diag"
	"github.com/jward/arbor/internal/doc"
)

// Resolver schedules a deferred lookup of a possibly-dotted entity name.
// The callback runs once the name resolves, which may be immediately or on
// a later ingestion turn, or never if the name is never declared.
type Resolver interface {
	Resolve(name string, fn func(*doc.Entity))
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(name string, fn func(*doc.Entity))

func (f ResolverFunc) Resolve(name string, fn func(*doc.Entity)) { f(name, fn) }

// Interpreter maps a comment's ordered tag list into an Entity. It is
// stateless across comments; the resolver handle is only used for the
// memberof (belongs-to-parent) case.
type Interpreter struct {
	resolver Resolver
	sink     diag.Sink
}

// NewInterpreter returns an Interpreter. resolver may be nil, in which case
// memberof tags record the declared parent name without scheduling an
// attach. sink may be nil for silent operation.
func NewInterpreter(resolver Resolver, sink diag.Sink) *Interpreter {
	if sink == nil {
		sink = diag.Nop{}
	}
	return &Interpreter{resolver: resolver, sink: sink}
}

// Interpret builds an Entity from an ordered tag list. Tags are processed
// independently of order except that repeated scalar tags overwrite (last
// write wins) while list tags append. Unrecognized tags are reported to the
// sink and otherwise ignored; nothing here ever fails a comment.
func (in *Interpreter) Interpret(list []Tag) *doc.Entity {
	e := &doc.Entity{}
	for _, t := range list {
		in.apply(e, t)
	}
	return e
}

func (in *Interpreter) apply(e *doc.Entity, t Tag) {
	switch t.Kind {
	case TagClass:
		e.IsClass = true
	case TagModule:
		e.IsModule = true
	case TagFunction, TagMethod:
		e.IsFunction = true
	case TagConstant:
		e.IsConstant = true
	case TagEnum:
		e.IsEnum = true
	case TagIgnore:
		e.IsIgnored = true
	case TagPrivate:
		e.IsPrivate = true
	case TagName:
		e.Name = t.Value
	case TagType:
		e.Types = append(e.Types, t.Types...)
	case TagSee:
		e.See = t.Value
	case TagDefault:
		e.Default = t.Value
	case TagParam:
		e.Params = append(e.Params, doc.Param{
			Name:        t.Name,
			Types:       t.Types,
			Description: t.Text,
		})
	case TagReturn, TagReturns:
		e.Return = &doc.Return{Types: t.Types, Description: t.Text}
	case TagKind:
		in.applyKind(e, t.Value)
	case TagMemberOf:
		e.ParentName = t.Parent
		if in.resolver != nil {
			child := e
			in.resolver.Resolve(t.Parent, func(parent *doc.Entity) {
				if !parent.AddChild(child) {
					in.sink.Warnf("entity %q already has a parent, not attaching to %q",
						child.Name, parent.Name)
				}
			})
		}
	default:
		in.sink.Warnf("unrecognized tag %q ignored", t.Kind)
	}
}

// applyKind re-dispatches a kind tag to one of the closed set of kind
// flags. Unrecognized values warn and set nothing.
func (in *Interpreter) applyKind(e *doc.Entity, value string) {
	switch value {
	case TagClass:
		e.IsClass = true
	case TagFunction, TagMethod:
		e.IsFunction = true
	case TagConstant:
		e.IsConstant = true
	case TagEnum:
		e.IsEnum = true
	default:
		in.sink.Warnf("unrecognized kind value %q ignored", value)
	}
}

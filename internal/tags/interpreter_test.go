package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/arbor/internal/diag"
	"github.com/jward/arbor/internal/doc"
)

// stubResolver records resolve calls and lets tests fire them on demand.
type stubResolver struct {
	names []string
	fns   []func(*doc.Entity)
}

func (r *stubResolver) Resolve(name string, fn func(*doc.Entity)) {
	r.names = append(r.names, name)
	r.fns = append(r.fns, fn)
}

func TestInterpret_KindFlags(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	tests := []struct {
		tag  string
		want doc.Kind
	}{
		{TagClass, doc.KindClass},
		{TagModule, doc.KindModule},
		{TagFunction, doc.KindFunction},
		{TagMethod, doc.KindFunction},
		{TagConstant, doc.KindConstant},
		{TagEnum, doc.KindEnum},
	}
	for _, tt := range tests {
		e := in.Interpret([]Tag{{Kind: tt.tag}})
		assert.Equal(t, tt.want, e.Kind(), "tag %q", tt.tag)
	}
}

func TestInterpret_IgnoreAndPrivate(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	e := in.Interpret([]Tag{{Kind: TagFunction}, {Kind: TagIgnore}, {Kind: TagPrivate}})
	assert.True(t, e.IsIgnored)
	assert.True(t, e.IsPrivate)
	assert.True(t, e.IsFunction)
}

func TestInterpret_RepeatedNameLastWins(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	e := in.Interpret([]Tag{
		{Kind: TagName, Value: "first"},
		{Kind: TagName, Value: "second"},
	})
	assert.Equal(t, "second", e.Name)
}

func TestInterpret_RepeatedTypesConcatenate(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	e := in.Interpret([]Tag{
		{Kind: TagType, Types: []string{"string", "number"}},
		{Kind: TagType, Types: []string{"object"}},
	})
	assert.Equal(t, []string{"string", "number", "object"}, e.Types)
}

func TestInterpret_ParamsAppendInOrder(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	e := in.Interpret([]Tag{
		{Kind: TagParam, Name: "a", Types: []string{"string"}, Text: "the a"},
		{Kind: TagParam, Name: "b", Types: []string{"number"}, Text: "the b"},
	})
	require.Len(t, e.Params, 2)
	assert.Equal(t, "a", e.Params[0].Name)
	assert.Equal(t, []string{"string"}, e.Params[0].Types)
	assert.Equal(t, "the a", e.Params[0].Description)
	assert.Equal(t, "b", e.Params[1].Name)
}

func TestInterpret_ReturnSeeDefault(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	e := in.Interpret([]Tag{
		{Kind: TagReturn, Types: []string{"bool"}, Text: "whether it worked"},
		{Kind: TagSee, Value: "Other.thing"},
		{Kind: TagDefault, Value: "42"},
	})
	require.NotNil(t, e.Return)
	assert.Equal(t, []string{"bool"}, e.Return.Types)
	assert.Equal(t, "whether it worked", e.Return.Description)
	assert.Equal(t, "Other.thing", e.See)
	assert.Equal(t, "42", e.Default)
}

func TestInterpret_KindTagRedispatch(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	e := in.Interpret([]Tag{{Kind: TagKind, Value: "class"}})
	assert.True(t, e.IsClass)

	e = in.Interpret([]Tag{{Kind: TagKind, Value: "enum"}})
	assert.True(t, e.IsEnum)
}

func TestInterpret_UnknownKindValueWarnsNonFatal(t *testing.T) {
	t.Parallel()
	rec := &diag.Recorder{}
	in := NewInterpreter(nil, rec)

	e := in.Interpret([]Tag{
		{Kind: TagKind, Value: "widget"},
		{Kind: TagName, Value: "foo"},
	})
	assert.Equal(t, doc.KindMisc, e.Kind())
	assert.Equal(t, "foo", e.Name, "later tags still apply")
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "widget")
}

func TestInterpret_UnknownTagWarnsNonFatal(t *testing.T) {
	t.Parallel()
	rec := &diag.Recorder{}
	in := NewInterpreter(nil, rec)

	e := in.Interpret([]Tag{
		{Kind: "sparkle"},
		{Kind: TagClass},
	})
	assert.True(t, e.IsClass)
	require.Len(t, rec.Warnings, 1)
	assert.Contains(t, rec.Warnings[0], "sparkle")
}

func TestInterpret_MemberOfSchedulesResolve(t *testing.T) {
	t.Parallel()
	r := &stubResolver{}
	in := NewInterpreter(r, nil)

	e := in.Interpret([]Tag{
		{Kind: TagFunction},
		{Kind: TagName, Value: "f"},
		{Kind: TagMemberOf, Parent: "Foo.Bar"},
	})
	assert.Equal(t, "Foo.Bar", e.ParentName)
	require.Equal(t, []string{"Foo.Bar"}, r.names)

	// Firing the deferred callback attaches the child.
	parent := &doc.Entity{Name: "Bar", IsClass: true}
	r.fns[0](parent)
	assert.Same(t, parent, e.Parent())
	require.Len(t, parent.Children(), 1)
}

func TestInterpret_MemberOfAlreadyParentedWarns(t *testing.T) {
	t.Parallel()
	r := &stubResolver{}
	rec := &diag.Recorder{}
	in := NewInterpreter(r, rec)

	e := in.Interpret([]Tag{
		{Kind: TagName, Value: "f"},
		{Kind: TagMemberOf, Parent: "A"},
		{Kind: TagMemberOf, Parent: "B"},
	})
	assert.Equal(t, "B", e.ParentName, "last declared parent name wins")

	a := &doc.Entity{Name: "A"}
	b := &doc.Entity{Name: "B"}
	r.fns[0](a)
	r.fns[1](b)

	assert.Same(t, a, e.Parent(), "first resolution wins, never re-parented")
	require.Len(t, rec.Warnings, 1)
}

func TestInterpret_NilResolverRecordsParentName(t *testing.T) {
	t.Parallel()
	in := NewInterpreter(nil, nil)

	e := in.Interpret([]Tag{{Kind: TagMemberOf, Parent: "Foo"}})
	assert.Equal(t, "Foo", e.ParentName)
	assert.Nil(t, e.Parent())
}

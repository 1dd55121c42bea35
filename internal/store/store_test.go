package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/arbor/internal/doc"
	"github.com/jward/arbor/internal/index"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	t.Cleanup(func() { s.Close() })
	return s
}

// buildForest assembles a small index: class Text with child function
// split, a top-level module, and one pending reference.
func buildForest(t *testing.T) *index.Index {
	t.Helper()
	ix := index.New()

	split := &doc.Entity{
		Name:       "split",
		IsFunction: true,
		ParentName: "Text",
		Params: []doc.Param{
			{Name: "sep", Types: []string{"string", "RegExp"}, Description: "the separator"},
		},
		Return: &doc.Return{Types: []string{"Array"}, Description: "the pieces"},
		File:   "text.js",
		Line:   10,
	}
	ix.Resolve("Text", func(p *doc.Entity) { p.AddChild(split) })
	ix.Add(split)

	ix.Add(&doc.Entity{
		Name:        "Text",
		IsClass:     true,
		Description: "A text helper.",
		File:        "text.js",
		Line:        1,
	})
	ix.Add(&doc.Entity{Name: "util", IsModule: true})
	ix.Add(&doc.Entity{Name: "MAX", IsConstant: true, Default: "42", Types: []string{"number"}})

	// A reference whose parent never arrives.
	ix.Resolve("Ghost", nil)
	return ix
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestSave_WritesForest(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Save(buildForest(t)))

	text, err := s.EntityByQualifiedName("Text")
	require.NoError(t, err)
	require.NotNil(t, text)
	assert.Equal(t, "class", text.Kind)
	assert.Equal(t, "A text helper.", text.Description)
	assert.Nil(t, text.ParentEntityID)

	children, err := s.ChildrenOf(text.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "split", children[0].Name)
	assert.Equal(t, "Text.split", children[0].QualifiedName)
	require.NotNil(t, children[0].ParentEntityID)
	assert.Equal(t, text.ID, *children[0].ParentEntityID)
}

func TestSave_AttachedEntityWrittenOnce(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Save(buildForest(t)))

	// split is both a top-level function record and a child of Text; the
	// snapshot holds a single row for it.
	var n int
	require.NoError(t, s.db.QueryRow(
		"SELECT COUNT(*) FROM entities WHERE name = 'split'").Scan(&n))
	assert.Equal(t, 1, n)

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, 1, counts["class"])
	assert.Equal(t, 1, counts["module"])
	assert.Equal(t, 1, counts["function"])
	assert.Equal(t, 1, counts["constant"])
}

func TestSave_ParamsAndTypes(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Save(buildForest(t)))

	split, err := s.EntityByQualifiedName("Text.split")
	require.NoError(t, err)
	require.NotNil(t, split)

	params, err := s.ParamsOf(split.ID)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "sep", params[0].Name)
	assert.Equal(t, []string{"string", "RegExp"}, SplitTypeExpr(params[0].TypeExpr))
	assert.False(t, params[0].IsReturn)
	assert.True(t, params[1].IsReturn)
	assert.Equal(t, "Array", params[1].TypeExpr)

	max, err := s.EntityByQualifiedName("MAX")
	require.NoError(t, err)
	require.NotNil(t, max)
	types, err := s.TypesOf(max.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"number"}, types)
	assert.Equal(t, "42", max.DefaultValue)
}

func TestSave_PendingNames(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Save(buildForest(t)))

	pending, err := s.PendingNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ghost"}, pending)
}

func TestSave_ReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Save(buildForest(t)))

	fresh := index.New()
	fresh.Add(&doc.Entity{Name: "Solo", IsClass: true})
	require.NoError(t, s.Save(fresh))

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"class": 1}, counts)

	pending, err := s.PendingNames()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRoots(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	require.NoError(t, s.Save(buildForest(t)))

	roots, err := s.Roots()
	require.NoError(t, err)
	// Text, util, MAX are roots; split is attached under Text.
	require.Len(t, roots, 3)
	for _, r := range roots {
		assert.NotEqual(t, "split", r.Name)
	}
}

func TestEntityByQualifiedName_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	e, err := s.EntityByQualifiedName("Nothing")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestMetadata_RoundTripAndOverwrite(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	v, err := s.GetMetadata("built_at")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SetMetadata("built_at", "yesterday"))
	require.NoError(t, s.SetMetadata("built_at", "today"))
	v, err = s.GetMetadata("built_at")
	require.NoError(t, err)
	assert.Equal(t, "today", v)
}

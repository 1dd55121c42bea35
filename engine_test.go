package arbor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/arbor/internal/diag"
)

// childFirstJS documents the member before its parent class exists.
const childFirstJS = `/**
 * Splits text on a separator.
 * @function
 * @name split
 * @memberof Text
 * @param {string|RegExp} sep the separator
 * @return {Array} the pieces
 */
function split(sep) {}

/**
 * Internal scratch buffer.
 * @constant
 * @name SCRATCH
 * @ignore
 */
var SCRATCH = [];
`

const parentJS = `/**
 * A text helper.
 * @class
 * @name Text
 */
function Text() {}

/**
 * A text helper impostor.
 * @class
 * @name Text
 */
function TextAgain() {}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildFiles_ChildBeforeParentAcrossFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	members := writeFile(t, dir, "members.js", childFirstJS)
	text := writeFile(t, dir, "text.js", parentJS)

	e, err := New()
	require.NoError(t, err)
	// Child file first: the memberof reference must wait for text.js.
	require.NoError(t, e.BuildFiles(context.Background(), []string{members, text}))

	q := e.Query()
	textEntity := q.Entity("Text")
	require.NotNil(t, textEntity)
	assert.Equal(t, "A text helper.", textEntity.Description, "first definition wins")

	split := q.FirstChild("Text", "split")
	require.NotNil(t, split)
	assert.Same(t, textEntity, split.Parent())
	assert.Equal(t, KindFunction, split.Kind())
	require.Len(t, split.Params, 1)
	assert.Equal(t, "sep", split.Params[0].Name)

	// split is also a top-level function record.
	assert.Same(t, split, q.Entity("split"))
	assert.Same(t, split, q.Entity("Text.split"))

	stats := e.Stats()
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 4, stats.Comments)
	assert.Equal(t, 1, stats.Ignored, "SCRATCH is ignored")
	assert.Equal(t, 1, stats.Classes)
	assert.Equal(t, 1, stats.Functions)
	assert.Zero(t, stats.Constants, "ignored entities are stored nowhere")
	assert.Equal(t, 1, stats.DuplicatesDropped)
	assert.Zero(t, stats.PendingResolutions)
	assert.Empty(t, stats.PendingNames)
}

func TestBuildFiles_NeverDeclaredParentStaysPending(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	orphan := writeFile(t, dir, "orphan.js", `/**
 * @function
 * @name lost
 * @memberof Ghost
 */
function lost() {}
`)

	e, err := New()
	require.NoError(t, err)
	require.NoError(t, e.BuildFiles(context.Background(), []string{orphan}))

	stats := e.Stats()
	assert.Equal(t, 1, stats.PendingResolutions)
	assert.Equal(t, []string{"Ghost"}, stats.PendingNames)

	lost := e.Query().Entity("lost")
	require.NotNil(t, lost)
	assert.Nil(t, lost.Parent())
}

func TestBuildFiles_MissingFileLoggedAndSkipped(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := writeFile(t, dir, "good.js", parentJS)
	rec := &diag.Recorder{}

	e, err := New(WithDiagnostics(rec))
	require.NoError(t, err)

	err = e.BuildFiles(context.Background(), []string{
		filepath.Join(dir, "missing.js"), good,
	})
	assert.Error(t, err)
	assert.NotEmpty(t, rec.Warnings)
	// The good file was still processed.
	assert.NotNil(t, e.Query().Entity("Text"))
}

func TestBuildFiles_LanguageFilter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	js := writeFile(t, dir, "a.js", parentJS)
	goSrc := writeFile(t, dir, "b.go", "package b\n\n// Widget holds state.\n// @class\n// @name Widget\ntype Widget struct{}\n")

	e, err := New(WithLanguages("go"))
	require.NoError(t, err)
	require.NoError(t, e.BuildFiles(context.Background(), []string{js, goSrc}))

	q := e.Query()
	assert.Nil(t, q.Entity("Text"))
	assert.NotNil(t, q.Entity("Widget"))
}

func TestBuildFiles_ExcludeGlobs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	keep := writeFile(t, dir, "keep.js", parentJS)
	skip := writeFile(t, dir, "skip_generated.js", childFirstJS)

	e, err := New(WithExcludes("*_generated.js"))
	require.NoError(t, err)
	require.NoError(t, e.BuildFiles(context.Background(), []string{keep, skip}))

	q := e.Query()
	assert.NotNil(t, q.Entity("Text"))
	assert.Nil(t, q.Entity("split"))
	assert.Equal(t, 1, e.Stats().Files)
}

func TestNew_InvalidExcludePattern(t *testing.T) {
	t.Parallel()
	_, err := New(WithExcludes("[unclosed"))
	assert.Error(t, err)
}

func TestBuildDirectory_WalkSkipsExcludedDirs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "src/text.js", parentJS)
	writeFile(t, dir, "node_modules/dep/index.js", childFirstJS)
	writeFile(t, dir, "fixtures/sample.js", childFirstJS)
	writeFile(t, dir, ".hidden/secret.js", childFirstJS)

	e, err := New(WithExcludeDirs("fixtures"))
	require.NoError(t, err)
	require.NoError(t, e.BuildDirectory(context.Background(), dir))

	q := e.Query()
	assert.NotNil(t, q.Entity("Text"))
	assert.Nil(t, q.Entity("split"), "excluded dirs are not walked")
	assert.Equal(t, 1, e.Stats().Files)
}

func TestIngest_Directly(t *testing.T) {
	t.Parallel()
	e, err := New()
	require.NoError(t, err)

	e.Ingest([]Comment{
		{Tags: []Tag{{Kind: "class"}, {Kind: "name", Value: "Raw"}}, Description: "made by hand"},
	})

	raw := e.Query().Entity("Raw")
	require.NotNil(t, raw)
	assert.Equal(t, "made by hand", raw.Description)
}

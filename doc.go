// Package arbor builds a navigable documentation forest from tagged source
// comments. It parses documentation comments out of source files with
// tree-sitter, interprets each comment's tag list into a typed entity, and
// assembles entities into classes, modules, functions, and constants with
// parent/child relationships wired correctly regardless of the order in
// which comments arrive.
//
// # Pipeline
//
// Arbor operates in one pass per file:
//
//  1. Extract: parse the file with tree-sitter and collect documentation
//     comments (/** blocks, or // groups carrying @ directives) into
//     ordered tag lists.
//
//  2. Interpret: map each tag list to an entity record. A memberof tag
//     immediately schedules a deferred parent lookup.
//
//  3. Ingest: classify and store the entity in the index. Storing a class
//     or module publishes a resolution event that attaches any children
//     already waiting on that name.
//
// Forward references are the interesting case: a child documented before
// its parent waits on a one-shot subscription and is attached the moment
// the parent's comment is ingested. A reference whose parent never appears
// stays pending; that is a valid terminal state, reported through
// [Engine.Stats] rather than raised as an error.
//
// # Usage
//
// Create an Engine, build from a directory, and query:
//
//	e, err := arbor.New()
//	if err != nil { ... }
//
//	ctx := context.Background()
//	err = e.BuildDirectory(ctx, "path/to/project")
//
//	q := e.Query()
//	entity := q.Entity("Text.split")
//	pending := q.Pending()
//
// The built forest can be persisted to SQLite via the internal store for
// the arbor CLI's query commands; see cmd/arbor.
package arbor

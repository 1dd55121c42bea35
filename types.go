package arbor

import (
	"github.com/jward/arbor/internal/comments"
	"github.com/jward/arbor/internal/diag"
	"github.com/jward/arbor/internal/doc"
	"github.com/jward/arbor/internal/index"
	"github.com/jward/arbor/internal/tags"
)

// Public type aliases for internal types used in the Engine and
// QueryBuilder APIs. These are Go type aliases (=) — identical to the
// internal types at compile time; external consumers use these names.

type Entity = doc.Entity
type Param = doc.Param
type Return = doc.Return
type Kind = doc.Kind
type Tag = tags.Tag
type Comment = comments.Comment
type Index = index.Index
type Resolution = index.Resolution
type Diagnostics = diag.Sink

// Primary entity kinds, re-exported for classification checks.
const (
	KindMisc     = doc.KindMisc
	KindClass    = doc.KindClass
	KindModule   = doc.KindModule
	KindFunction = doc.KindFunction
	KindConstant = doc.KindConstant
	KindEnum     = doc.KindEnum
)

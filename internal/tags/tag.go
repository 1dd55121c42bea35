// Package tags defines the metadata tag record extracted from a comment and
// the interpreter that maps an ordered tag list into a doc.Entity.
package tags

// Recognized tag kinds. Anything outside this set is reported to the
// diagnostics sink and otherwise ignored.
const (
	TagClass    = "class"
	TagModule   = "module"
	TagFunction = "function"
	TagMethod   = "method"
	TagConstant = "constant"
	TagEnum     = "enum"
	TagIgnore   = "ignore"
	TagPrivate  = "private"
	TagName     = "name"
	TagType     = "type"
	TagSee      = "see"
	TagDefault  = "default"
	TagParam    = "param"
	TagReturn   = "return"
	TagReturns  = "returns"
	TagKind     = "kind"
	TagMemberOf = "memberof"
)

// Tag is a single metadata directive from a comment. Which payload fields
// are populated depends on Kind: Types for type/param/return, Name for
// param, Parent for memberof, Value for the remaining scalar tags, and Text
// for trailing free-form description.
type Tag struct {
	Kind   string
	Types  []string
	Name   string
	Parent string
	Value  string
	Text   string
}

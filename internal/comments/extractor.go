// Package comments extracts documentation comments from source files and
// parses them into ordered tag lists. It is the boundary that feeds the
// entity pipeline; the core treats its output as an append-only sequence
// and is agnostic to how it was produced.
package comments

import (
	"context"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/arbor/internal/tags"
)

// Comment is one raw documentation comment: its ordered tag list, the
// free-form prose around the tags, the marker-stripped body, the raw source
// text, and where it came from.
type Comment struct {
	Tags        []tags.Tag
	Description string
	Body        string
	Source      string
	File        string
	Line        int
}

// Extractor parses source files with tree-sitter and collects documentation
// comments. An Extractor is not safe for concurrent use; extraction runs on
// the ingestion goroutine.
type Extractor struct {
	parser *sitter.Parser
}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{parser: sitter.NewParser()}
}

// ExtractFile reads and extracts comments from the file at path. Files with
// unsupported extensions yield no comments and no error.
func (x *Extractor) ExtractFile(ctx context.Context, path string) ([]Comment, error) {
	lang, ok := LanguageForFile(path)
	if !ok {
		return nil, nil
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return x.Extract(ctx, source, lang, path)
}

// Extract collects documentation comments from source in arrival order.
// For JavaScript and TypeScript a documentation comment is a /** block;
// for Go it is a contiguous group of // lines containing at least one @
// directive. Ordinary comments are not documentation and are skipped.
func (x *Extractor) Extract(ctx context.Context, source []byte, lang, path string) ([]Comment, error) {
	grammar, ok := GrammarForLanguage(lang)
	if !ok {
		return nil, nil
	}
	x.parser.SetLanguage(grammar)
	tree, err := x.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	var nodes []*sitter.Node
	collectCommentNodes(tree.RootNode(), &nodes)

	if lang == "go" {
		return buildLineComments(nodes, source, path), nil
	}
	return buildBlockComments(nodes, source, path), nil
}

// collectCommentNodes walks the syntax tree appending every comment node in
// document order.
func collectCommentNodes(n *sitter.Node, out *[]*sitter.Node) {
	if n == nil {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.Type() == "comment" {
			*out = append(*out, child)
		}
		collectCommentNodes(child, out)
	}
}

// buildBlockComments turns /** ... */ nodes into Comments, one per block.
func buildBlockComments(nodes []*sitter.Node, source []byte, path string) []Comment {
	var out []Comment
	for _, n := range nodes {
		raw := nodeText(n, source)
		if !strings.HasPrefix(raw, "/**") {
			continue
		}
		out = append(out, newComment(raw, path, int(n.StartPoint().Row)+1))
	}
	return out
}

// buildLineComments groups adjacent // lines into blocks and keeps only
// blocks carrying at least one @ directive.
func buildLineComments(nodes []*sitter.Node, source []byte, path string) []Comment {
	var out []Comment

	var group []string
	groupLine := 0
	lastRow := -2

	flush := func() {
		if len(group) == 0 {
			return
		}
		raw := strings.Join(group, "\n")
		if hasDirective(group) {
			out = append(out, newComment(raw, path, groupLine))
		}
		group = nil
	}

	for _, n := range nodes {
		raw := nodeText(n, source)
		if !strings.HasPrefix(raw, "//") {
			flush()
			lastRow = -2
			continue
		}
		row := int(n.StartPoint().Row)
		if row != lastRow+1 {
			flush()
			groupLine = row + 1
		}
		group = append(group, raw)
		lastRow = row
	}
	flush()
	return out
}

func hasDirective(lines []string) bool {
	for _, line := range lines {
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "//"))
		if strings.HasPrefix(text, "@") {
			return true
		}
	}
	return false
}

func newComment(raw, path string, line int) Comment {
	list, description, body := ParseComment(raw)
	return Comment{
		Tags:        list,
		Description: description,
		Body:        body,
		Source:      raw,
		File:        path,
		Line:        line,
	}
}

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

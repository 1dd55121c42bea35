package comments

import (
	"strings"

	"github.com/jward/arbor/internal/tags"
)

// ParseComment splits a raw comment into its tag list, free-form
// description, and marker-stripped body. Lines beginning with @ are tag
// directives; everything else accumulates into the description. Unknown
// directives are passed through as tags so the interpreter can warn on them
// in one place.
func ParseComment(raw string) (list []tags.Tag, description, body string) {
	lines := cleanLines(raw)
	body = strings.Join(lines, "\n")

	var prose []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "@") {
			list = append(list, parseTagLine(trimmed))
			continue
		}
		prose = append(prose, line)
	}
	description = strings.TrimSpace(strings.Join(prose, "\n"))
	return list, description, body
}

// cleanLines strips comment markers: the /** and */ delimiters, leading *
// on block-comment continuation lines, and leading // on line comments.
func cleanLines(raw string) []string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "//"):
			line = strings.TrimPrefix(line, "//")
		case strings.HasPrefix(line, "*"):
			line = strings.TrimPrefix(line, "*")
		}
		line = strings.TrimPrefix(line, " ")
		out = append(out, line)
	}
	// Drop blank leading/trailing lines left by the delimiters.
	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}

// parseTagLine parses one @directive line into a Tag. Payload layout per
// kind:
//
//	@param {A|B} name text
//	@return {A} text
//	@type {A|B}
//	@name X / @see X / @kind X / @memberof Parent.Path
//	@default expr...
//	@class, @module, @function, @method, @constant, @enum, @ignore, @private
func parseTagLine(line string) tags.Tag {
	rest := strings.TrimPrefix(line, "@")
	kind := rest
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		kind, rest = rest[:i], strings.TrimSpace(rest[i+1:])
	} else {
		rest = ""
	}

	t := tags.Tag{Kind: kind}

	// Optional {Type|Type} payload, only meaningful on typed tags. A brace
	// elsewhere (say, a @default object literal) is plain value text.
	switch kind {
	case tags.TagParam, tags.TagReturn, tags.TagReturns, tags.TagType:
		if strings.HasPrefix(rest, "{") {
			if end := strings.Index(rest, "}"); end >= 0 {
				t.Types = splitTypes(rest[1:end])
				rest = strings.TrimSpace(rest[end+1:])
			}
		}
	}

	switch kind {
	case tags.TagParam:
		if i := strings.IndexAny(rest, " \t"); i >= 0 {
			t.Name, t.Text = rest[:i], strings.TrimSpace(rest[i+1:])
		} else {
			t.Name = rest
		}
	case tags.TagReturn, tags.TagReturns:
		t.Text = rest
	case tags.TagType:
		if len(t.Types) == 0 && rest != "" {
			t.Types = splitTypes(rest)
		}
	case tags.TagMemberOf:
		t.Parent = firstToken(rest)
	case tags.TagName, tags.TagSee, tags.TagKind:
		t.Value = firstToken(rest)
	case tags.TagDefault:
		t.Value = rest
	case tags.TagClass, tags.TagModule, tags.TagFunction, tags.TagMethod,
		tags.TagConstant, tags.TagEnum, tags.TagIgnore, tags.TagPrivate:
		// Bare flags carry no payload.
	default:
		t.Text = rest
	}
	return t
}

func splitTypes(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstToken(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}

package directive

import (
	"regexp"
	"sort"
)

// Kind identifies a template directive.
type Kind int

const (
	// Unknown is any @gen-NAME@ that genstep does not define.
	Unknown Kind = iota - 1
	// Var is @gen-var:NAME@.
	Var
	// Comment is @gen-comment:TEXT@.
	Comment
	// Raw is @gen-raw:CONTENT@.
	Raw
	// If is @gen-if:NAME@.
	If
	// Else is @gen-else@.
	Else
	// Endif is @gen-endif@.
	Endif
	// Include is @gen-include:PATH@.
	Include
)

var directiveKinds = map[string]Kind{
	"var":     Var,
	"comment": Comment,
	"raw":     Raw,
	"if":      If,
	"else":    Else,
	"endif":   Endif,
	"include": Include,
}

// String returns the directive name.
func (k Kind) String() string {
	for name, kind := range directiveKinds {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// match is one directive occurrence in a template.
type match struct {
	kind  Kind
	name  string
	args  string
	start int
	end   int
	text  string
}

var (
	// @gen-NAME@ or @gen-NAME:ARGS@
	directivePattern = regexp.MustCompile(`@gen-([a-z]+)(?::([^@\n]*))?@`)

	// Raw content may itself contain whole directives, which stay literal:
	// @gen-raw:@gen-var:name@@ emits @gen-var:name@.
	rawPattern = regexp.MustCompile(`@gen-raw:((?:[^@\n]|@gen-[a-z]+(?::[^@\n]*)?@)*)@`)
)

// scan returns every directive in text ordered by position. Directives
// inside a raw directive are not reported separately.
func scan(text string) []match {
	var matches []match
	covered := func(pos int) bool {
		for _, m := range matches {
			if m.kind == Raw && pos >= m.start && pos < m.end {
				return true
			}
		}
		return false
	}

	for _, idx := range rawPattern.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, match{
			kind:  Raw,
			name:  "raw",
			args:  text[idx[2]:idx[3]],
			start: idx[0],
			end:   idx[1],
			text:  text[idx[0]:idx[1]],
		})
	}

	for _, idx := range directivePattern.FindAllStringSubmatchIndex(text, -1) {
		if covered(idx[0]) {
			continue
		}
		name := text[idx[2]:idx[3]]
		kind, ok := directiveKinds[name]
		if !ok {
			kind = Unknown
		}
		if kind == Raw {
			// @gen-raw@ without a colon carries no content.
			kind = Unknown
		}
		var args string
		if idx[4] != -1 {
			args = text[idx[4]:idx[5]]
		}
		matches = append(matches, match{
			kind:  kind,
			name:  name,
			args:  args,
			start: idx[0],
			end:   idx[1],
			text:  text[idx[0]:idx[1]],
		})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })
	return matches
}

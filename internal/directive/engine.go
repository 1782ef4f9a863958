// Package directive is genstep's built-in macro expansion facility.
//
// A template is plain text with @gen-*@ directives:
//
//	@gen-var:NAME@                   substitute a variable (required)
//	@gen-var:NAME:TYPE=DEFAULT@      typed, optional variable
//	@gen-if:NAME@ @gen-else@ @gen-endif@
//	@gen-comment:TEXT@               drop the whole line
//	@gen-include:PATH@               inline another template
//	@gen-raw:CONTENT@                emit CONTENT without processing
package directive

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tacogips/genstep/internal/debug"
)

// DefaultMaxIncludeDepth bounds @gen-include: nesting.
const DefaultMaxIncludeDepth = 10

// Engine expands templates.
type Engine struct {
	// Root is the directory that absolute include paths (/x) resolve
	// against and that no include may escape. Empty means the directory of
	// the file being expanded.
	Root string
	// MaxIncludeDepth bounds include nesting; zero means DefaultMaxIncludeDepth.
	MaxIncludeDepth int
}

// NewEngine creates an Engine with default limits.
func NewEngine(root string) *Engine {
	return &Engine{Root: root, MaxIncludeDepth: DefaultMaxIncludeDepth}
}

// state is the per-file expansion context.
type state struct {
	vars  Vars
	root  string
	file  string
	depth int
	stack []string
}

// Expand expands input that does not come from a file. Relative includes
// resolve against Root.
func (e *Engine) Expand(ctx context.Context, input []byte, vars Vars) ([]byte, error) {
	root, err := filepath.Abs(e.rootFor(""))
	if err != nil {
		return nil, err
	}
	st := &state{vars: vars, root: root, file: filepath.Join(root, "-")}
	out, err := e.expand(ctx, string(input), st)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// ExpandFile expands the contents of the file at path.
func (e *Engine) ExpandFile(ctx context.Context, path string, content []byte, vars Vars) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(e.rootFor(abs))
	if err != nil {
		return nil, err
	}
	st := &state{vars: vars, root: root, file: abs, stack: []string{abs}}
	out, err := e.expand(ctx, string(content), st)
	if err != nil {
		return nil, inFile(err, path)
	}
	return []byte(out), nil
}

func (e *Engine) rootFor(file string) string {
	if e.Root != "" {
		return e.Root
	}
	if file != "" {
		return filepath.Dir(file)
	}
	return "."
}

func (e *Engine) maxDepth() int {
	if e.MaxIncludeDepth > 0 {
		return e.MaxIncludeDepth
	}
	return DefaultMaxIncludeDepth
}

// expand runs the passes in order: raw extraction, includes, conditionals,
// comments, variables, raw restoration. Raw content and included output are
// parked behind placeholders so later passes never see them.
func (e *Engine) expand(ctx context.Context, text string, st *state) (string, error) {
	debug.Debug("[directive] expand: file=%s depth=%d size=%d", st.file, st.depth, len(text))

	if err := checkNUL(text); err != nil {
		return "", err
	}

	parked := &parking{}

	text = parked.rawDirectives(text)

	text, err := e.includes(ctx, text, st, parked)
	if err != nil {
		return "", err
	}

	if err := checkUnknown(text); err != nil {
		return "", err
	}

	if text, err = conditionals(text, st.vars); err != nil {
		return "", err
	}
	if text, err = comments(text); err != nil {
		return "", err
	}
	if text, err = variables(text, st.vars); err != nil {
		return "", err
	}

	return parked.restore(text), nil
}

// checkNUL rejects text containing NUL, which parking placeholders use as
// delimiters.
func checkNUL(text string) error {
	if i := strings.IndexByte(text, 0); i >= 0 {
		return syntaxErr(InvalidSyntax, "", "template contains a NUL byte at offset %d", i)
	}
	return nil
}

// parking swaps text spans for NUL-delimited placeholders.
type parking struct {
	spans []string
}

func (p *parking) park(s string) string {
	p.spans = append(p.spans, s)
	return fmt.Sprintf("\x00GEN_PARKED_%d\x00", len(p.spans)-1)
}

func (p *parking) rawDirectives(text string) string {
	matches := scan(text)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.kind != Raw {
			continue
		}
		text = text[:m.start] + p.park(m.args) + text[m.end:]
	}
	return text
}

func (p *parking) restore(text string) string {
	for i := len(p.spans) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, fmt.Sprintf("\x00GEN_PARKED_%d\x00", i), p.spans[i])
	}
	return text
}

func checkUnknown(text string) error {
	for _, m := range scan(text) {
		if m.kind == Unknown {
			return syntaxErr(UnknownDirective, m.text, "unknown directive: %s", m.name)
		}
	}
	return nil
}

// comments drops every line holding a @gen-comment: directive.
func comments(text string) (string, error) {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		loc := commentLocation(line)
		if loc == nil {
			kept = append(kept, line)
			continue
		}
		if strings.TrimSpace(line[:loc[0]]) != "" || strings.TrimSpace(line[loc[1]:]) != "" {
			return "", syntaxErr(InvalidSyntax, strings.TrimSpace(line),
				"@gen-comment directive must be on its own line")
		}
	}
	return strings.Join(kept, "\n"), nil
}

func commentLocation(line string) []int {
	for _, loc := range directivePattern.FindAllStringSubmatchIndex(line, -1) {
		if line[loc[2]:loc[3]] == "comment" {
			return loc[:2]
		}
	}
	return nil
}

// variables substitutes every @gen-var: directive.
func variables(text string, vars Vars) (string, error) {
	matches := scan(text)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.kind != Var {
			continue
		}
		spec, err := parseVarSpec(m.args)
		if err != nil {
			return "", syntaxErr(InvalidSyntax, m.text, "%v", err)
		}
		val, err := spec.resolve(vars, m.text)
		if err != nil {
			return "", err
		}
		debug.Debug("[directive] var %s = %q", spec.name, val)
		text = text[:m.start] + val + text[m.end:]
	}
	return text, nil
}

// Validate checks template syntax without needing variable values.
func (e *Engine) Validate(input []byte) error {
	text := string(input)
	if err := checkNUL(text); err != nil {
		return err
	}
	matches := scan(text)
	for _, m := range matches {
		switch m.kind {
		case Unknown:
			return syntaxErr(UnknownDirective, m.text, "unknown directive: %s", m.name)
		case Var:
			if _, err := parseVarSpec(m.args); err != nil {
				return syntaxErr(InvalidSyntax, m.text, "%v", err)
			}
		case Include:
			if strings.TrimSpace(m.args) == "" {
				return syntaxErr(InvalidSyntax, m.text, "include path is empty")
			}
		case If:
			if strings.TrimSpace(m.args) == "" {
				return syntaxErr(InvalidSyntax, m.text, "condition variable is empty")
			}
		}
	}
	if _, err := innermostBlock(matches, text); err != nil {
		return err
	}
	_, err := comments(text)
	return err
}

// Variables returns the sorted, de-duplicated names referenced by
// @gen-var: and @gen-if: directives. Included files are not followed.
func (e *Engine) Variables(input []byte) ([]string, error) {
	seen := make(map[string]struct{})
	for _, m := range scan(string(input)) {
		switch m.kind {
		case Var:
			spec, err := parseVarSpec(m.args)
			if err != nil {
				return nil, syntaxErr(InvalidSyntax, m.text, "%v", err)
			}
			seen[spec.name] = struct{}{}
		case If:
			if name := strings.TrimSpace(m.args); name != "" {
				seen[name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

package directive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// includes replaces each @gen-include: directive with the expanded target,
// parked so the including file's passes leave it alone.
func (e *Engine) includes(ctx context.Context, text string, st *state, parked *parking) (string, error) {
	matches := scan(text)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.kind != Include {
			continue
		}

		if st.depth >= e.maxDepth() {
			return "", syntaxErr(IncludeDepth, m.text, "maximum include depth (%d) exceeded", e.maxDepth())
		}

		target := strings.TrimSpace(m.args)
		if target == "" {
			return "", syntaxErr(InvalidSyntax, m.text, "include path is empty")
		}

		resolved, err := resolveInclude(target, st.root, st.file)
		if err != nil {
			return "", &SyntaxError{Kind: IncludeNotFound, Message: err.Error(), Directive: m.text, Cause: err}
		}

		for _, seen := range st.stack {
			if seen == resolved {
				chain := append(append([]string{}, st.stack...), resolved)
				return "", syntaxErr(CircularInclude, m.text,
					"circular include detected: %s", strings.Join(chain, " -> "))
			}
		}

		content, err := os.ReadFile(resolved)
		if err != nil {
			return "", &SyntaxError{Kind: IncludeNotFound, Message: "failed to read include file", Directive: m.text, Cause: err}
		}

		child := &state{
			vars:  st.vars,
			root:  st.root,
			file:  resolved,
			depth: st.depth + 1,
			stack: append(append([]string{}, st.stack...), resolved),
		}
		out, err := e.expand(ctx, string(content), child)
		if err != nil {
			return "", inFile(err, resolved)
		}

		text = text[:m.start] + parked.park(out) + text[m.end:]
	}
	return text, nil
}

// resolveInclude maps an include path to a file inside root. Paths starting
// with / are relative to root, others to the including file's directory.
func resolveInclude(target, root, current string) (string, error) {
	if strings.Contains(target, "..") {
		return "", &pathError{"include path contains '..'", target}
	}

	var resolved string
	if strings.HasPrefix(target, "/") {
		resolved = filepath.Join(root, strings.TrimPrefix(target, "/"))
	} else {
		resolved = filepath.Join(filepath.Dir(current), filepath.FromSlash(target))
	}

	rel, err := filepath.Rel(root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &pathError{"include path escapes template root", target}
	}

	if _, err := os.Stat(resolved); err != nil {
		return "", &pathError{"include file not found", resolved}
	}
	return resolved, nil
}

type pathError struct {
	msg  string
	path string
}

func (e *pathError) Error() string {
	return e.msg + ": " + e.path
}

package directive

import "strings"

// block is one @gen-if:/@gen-else@/@gen-endif@ construct.
type block struct {
	cond      string
	directive string
	then      string
	otherwise string
	start     int
	end       int
}

// conditionals resolves if blocks innermost first until none remain.
func conditionals(text string, vars Vars) (string, error) {
	for {
		b, err := innermostBlock(scan(text), text)
		if err != nil {
			return "", err
		}
		if b == nil {
			return text, nil
		}

		ok, err := vars.Bool(b.cond)
		if err != nil {
			if se, isSyntax := err.(*SyntaxError); isSyntax {
				se.Directive = b.directive
			}
			return "", err
		}

		chosen := b.otherwise
		if ok {
			chosen = b.then
		}
		text = text[:b.start] + chosen + text[b.end:]
	}
}

// innermostBlock checks that if/else/endif directives are balanced and
// returns the block closed by the first @gen-endif@, which cannot contain
// another block. It returns nil when the text has no blocks.
func innermostBlock(matches []match, text string) (*block, error) {
	type open struct {
		ifm   match
		elsem *match
	}
	var stack []open
	var first *block

	for i := range matches {
		m := matches[i]
		switch m.kind {
		case If:
			if strings.TrimSpace(m.args) == "" {
				return nil, syntaxErr(InvalidSyntax, m.text, "condition variable is empty")
			}
			stack = append(stack, open{ifm: m})
		case Else:
			if len(stack) == 0 {
				return nil, syntaxErr(InvalidSyntax, m.text, "@gen-else@ without matching @gen-if:")
			}
			top := &stack[len(stack)-1]
			if top.elsem != nil {
				return nil, syntaxErr(InvalidSyntax, m.text, "duplicate @gen-else@ in @gen-if:%s@ block", top.ifm.args)
			}
			top.elsem = &matches[i]
		case Endif:
			if len(stack) == 0 {
				return nil, syntaxErr(InvalidSyntax, m.text, "@gen-endif@ without matching @gen-if:")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if first != nil {
				continue
			}
			b := &block{
				cond:      strings.TrimSpace(top.ifm.args),
				directive: top.ifm.text,
				start:     top.ifm.start,
				end:       m.end,
			}
			if top.elsem != nil {
				b.then = text[top.ifm.end:top.elsem.start]
				b.otherwise = text[top.elsem.end:m.start]
			} else {
				b.then = text[top.ifm.end:m.start]
			}
			first = b
		}
	}

	if len(stack) > 0 {
		unclosed := stack[len(stack)-1]
		return nil, syntaxErr(UnclosedBlock, unclosed.ifm.text,
			"unclosed @gen-if:%s@ block (missing @gen-endif@)", unclosed.ifm.args)
	}
	return first, nil
}

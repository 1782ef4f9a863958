package directive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func expandString(t *testing.T, input string, vars Vars) (string, error) {
	t.Helper()
	out, err := NewEngine(t.TempDir()).Expand(context.Background(), []byte(input), vars)
	return string(out), err
}

// TestVarDirective tests @gen-var: substitution
func TestVarDirective(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vars     Vars
		expected string
		wantErr  ErrorKind
	}{
		{
			name:     "simple string substitution",
			input:    "package @gen-var:pkg@",
			vars:     Vars{"pkg": "lib"},
			expected: "package lib",
		},
		{
			name:     "integer substitution",
			input:    "const X = @gen-var:x@",
			vars:     Vars{"x": 1},
			expected: "const X = 1",
		},
		{
			name:     "json number substitution",
			input:    "const X = @gen-var:x@",
			vars:     Vars{"x": float64(42)},
			expected: "const X = 42",
		},
		{
			name:     "toml integer substitution",
			input:    "const X = @gen-var:x@",
			vars:     Vars{"x": int64(7)},
			expected: "const X = 7",
		},
		{
			name:     "boolean substitution",
			input:    "const Debug = @gen-var:debug@",
			vars:     Vars{"debug": true},
			expected: "const Debug = true",
		},
		{
			name:     "multiple variables",
			input:    "@gen-var:host@:@gen-var:port@",
			vars:     Vars{"host": "localhost", "port": 8080},
			expected: "localhost:8080",
		},
		{
			name:     "default used when missing",
			input:    "port = @gen-var:port=8080@",
			vars:     Vars{},
			expected: "port = 8080",
		},
		{
			name:     "value wins over default",
			input:    "port = @gen-var:port=8080@",
			vars:     Vars{"port": 9090},
			expected: "port = 9090",
		},
		{
			name:     "typed variable",
			input:    "n = @gen-var:n:int@",
			vars:     Vars{"n": 3},
			expected: "n = 3",
		},
		{
			name:     "typed default coerced to string",
			input:    "v = @gen-var:v:string=10@",
			vars:     Vars{},
			expected: "v = 10",
		},
		{
			name:    "missing required variable",
			input:   "@gen-var:missing@",
			vars:    Vars{},
			wantErr: MissingVariable,
		},
		{
			name:    "type mismatch",
			input:   "@gen-var:n:int@",
			vars:    Vars{"n": "three"},
			wantErr: TypeMismatch,
		},
		{
			name:     "whole json number as int",
			input:    "n = @gen-var:n:int@",
			vars:     Vars{"n": float64(2)},
			expected: "n = 2",
		},
		{
			name:    "fractional json number is not int",
			input:   "n = @gen-var:n:int@",
			vars:    Vars{"n": 1.5},
			wantErr: TypeMismatch,
		},
		{
			name:    "invalid type name",
			input:   "@gen-var:n:float@",
			vars:    Vars{"n": 1},
			wantErr: InvalidSyntax,
		},
		{
			name:    "default does not match type",
			input:   "@gen-var:n:int=abc@",
			vars:    Vars{},
			wantErr: InvalidSyntax,
		},
		{
			name:    "empty name",
			input:   "@gen-var:@",
			vars:    Vars{},
			wantErr: InvalidSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandString(t, tt.input, tt.vars)
			if tt.expected == "" {
				assertKind(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got none", want)
	}
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if se.Kind != want {
		t.Errorf("error kind = %v, want %v (%v)", se.Kind, want, err)
	}
}

// TestConditionalDirective tests @gen-if:/@gen-else@/@gen-endif@ blocks
func TestConditionalDirective(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vars     Vars
		expected string
		wantErr  bool
		kind     ErrorKind
	}{
		{
			name:     "true without else",
			input:    "a@gen-if:on@b@gen-endif@c",
			vars:     Vars{"on": true},
			expected: "abc",
		},
		{
			name:     "false without else",
			input:    "a@gen-if:on@b@gen-endif@c",
			vars:     Vars{"on": false},
			expected: "ac",
		},
		{
			name:     "false with else",
			input:    "@gen-if:on@yes@gen-else@no@gen-endif@",
			vars:     Vars{"on": false},
			expected: "no",
		},
		{
			name:     "nested blocks",
			input:    "@gen-if:a@A@gen-if:b@B@gen-else@b@gen-endif@@gen-else@x@gen-endif@",
			vars:     Vars{"a": true, "b": false},
			expected: "Ab",
		},
		{
			name:     "sibling blocks",
			input:    "@gen-if:a@1@gen-endif@-@gen-if:b@2@gen-endif@",
			vars:     Vars{"a": true, "b": true},
			expected: "1-2",
		},
		{
			name:     "variables inside chosen branch",
			input:    "@gen-if:named@name=@gen-var:name@@gen-else@anonymous@gen-endif@",
			vars:     Vars{"named": true, "name": "x"},
			expected: "name=x",
		},
		{
			name:     "missing variable in discarded branch is fine",
			input:    "@gen-if:named@@gen-var:name@@gen-endif@",
			vars:     Vars{"named": false},
			expected: "",
		},
		{
			name:    "unclosed block",
			input:   "@gen-if:on@never closed",
			vars:    Vars{"on": true},
			wantErr: true,
			kind:    UnclosedBlock,
		},
		{
			name:    "stray endif",
			input:   "text@gen-endif@",
			vars:    Vars{},
			wantErr: true,
			kind:    InvalidSyntax,
		},
		{
			name:    "stray else",
			input:   "@gen-else@",
			vars:    Vars{},
			wantErr: true,
			kind:    InvalidSyntax,
		},
		{
			name:    "duplicate else",
			input:   "@gen-if:on@a@gen-else@b@gen-else@c@gen-endif@",
			vars:    Vars{"on": true},
			wantErr: true,
			kind:    InvalidSyntax,
		},
		{
			name:    "non-bool condition",
			input:   "@gen-if:on@a@gen-endif@",
			vars:    Vars{"on": "yes"},
			wantErr: true,
			kind:    TypeMismatch,
		},
		{
			name:    "missing condition",
			input:   "@gen-if:on@a@gen-endif@",
			vars:    Vars{},
			wantErr: true,
			kind:    MissingVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandString(t, tt.input, tt.vars)
			if tt.wantErr {
				assertKind(t, err, tt.kind)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestCommentDirective tests @gen-comment: line removal
func TestCommentDirective(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "only line", input: "@gen-comment:note@", expected: ""},
		{name: "indented", input: "    @gen-comment:note@", expected: ""},
		{name: "trailing whitespace", input: "@gen-comment:note@   ", expected: ""},
		{name: "middle line", input: "line1\n@gen-comment:removed@\nline3", expected: "line1\nline3"},
		{name: "text before", input: "code @gen-comment:note@", wantErr: true},
		{name: "text after", input: "@gen-comment:note@ code", wantErr: true},
		{name: "after another directive", input: "@gen-var:x@ @gen-comment:note@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandString(t, tt.input, Vars{"x": "1"})
			if tt.wantErr {
				assertKind(t, err, InvalidSyntax)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestRawDirective tests @gen-raw: passthrough
func TestRawDirective(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain content", input: "@gen-raw:keep me@", expected: "keep me"},
		{name: "embedded var", input: "x = \"@gen-raw:@gen-var:name@@\"", expected: "x = \"@gen-var:name@\""},
		{name: "embedded if", input: "@gen-raw:@gen-if:a@@", expected: "@gen-if:a@"},
		{name: "mixed with substitution", input: "@gen-var:name@ @gen-raw:@gen-var:name@@", expected: "lib @gen-var:name@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandString(t, tt.input, Vars{"name": "lib"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnknownDirective(t *testing.T) {
	_, err := expandString(t, "@gen-loop:items@", Vars{})
	assertKind(t, err, UnknownDirective)
}

func TestPlainTextUnchanged(t *testing.T) {
	input := "package lib\n\n// contact: dev@example.com\nconst X = 1\n"
	got, err := expandString(t, input, Vars{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != input {
		t.Errorf("expected unchanged text, got %q", got)
	}
}

func TestNULRejected(t *testing.T) {
	_, err := expandString(t, "a\x00GEN_PARKED_0\x00b @gen-raw:X@", Vars{})
	assertKind(t, err, InvalidSyntax)

	assertKind(t, NewEngine("").Validate([]byte("a\x00b")), InvalidSyntax)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// TestIncludeDirective tests @gen-include: resolution
func TestIncludeDirective(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "header.in"), "// generated for @gen-var:name@")
	writeFile(t, filepath.Join(root, "parts", "body.in"), "func @gen-var:name@() {}\n@gen-include:inner.in@")
	writeFile(t, filepath.Join(root, "parts", "inner.in"), "// inner @gen-raw:@gen-var:name@@")
	writeFile(t, filepath.Join(root, "loop", "a.in"), "@gen-include:b.in@")
	writeFile(t, filepath.Join(root, "loop", "b.in"), "@gen-include:a.in@")

	tests := []struct {
		name     string
		file     string
		input    string
		expected string
		kind     ErrorKind
		wantErr  bool
	}{
		{
			name:     "relative include",
			file:     filepath.Join(root, "main.in"),
			input:    "@gen-include:header.in@\npackage x",
			expected: "// generated for lib\npackage x",
		},
		{
			name:     "root include from subdirectory",
			file:     filepath.Join(root, "parts", "main.in"),
			input:    "@gen-include:/header.in@",
			expected: "// generated for lib",
		},
		{
			name:     "nested include keeps raw literal",
			file:     filepath.Join(root, "main.in"),
			input:    "@gen-include:parts/body.in@",
			expected: "func lib() {}\n// inner @gen-var:name@",
		},
		{
			name:    "include inside conditional still resolves",
			file:    filepath.Join(root, "main.in"),
			input:   "@gen-if:off@@gen-include:missing.in@@gen-endif@",
			wantErr: true,
			kind:    IncludeNotFound,
		},
		{
			name:    "parent traversal rejected",
			file:    filepath.Join(root, "parts", "main.in"),
			input:   "@gen-include:../header.in@",
			wantErr: true,
			kind:    IncludeNotFound,
		},
		{
			name:    "circular include",
			file:    filepath.Join(root, "loop", "a.in"),
			input:   "@gen-include:b.in@",
			wantErr: true,
			kind:    CircularInclude,
		},
		{
			name:    "empty include path",
			file:    filepath.Join(root, "main.in"),
			input:   "@gen-include: @",
			wantErr: true,
			kind:    InvalidSyntax,
		},
	}

	engine := NewEngine(root)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ExpandFile(context.Background(), tt.file, []byte(tt.input), Vars{"name": "lib", "off": false})
			if tt.wantErr {
				assertKind(t, err, tt.kind)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(got))
			}
		})
	}
}

func TestIncludeDepthLimit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "d1.in"), "@gen-include:d2.in@")
	writeFile(t, filepath.Join(root, "d2.in"), "@gen-include:d3.in@")
	writeFile(t, filepath.Join(root, "d3.in"), "leaf")

	engine := &Engine{Root: root, MaxIncludeDepth: 2}
	_, err := engine.ExpandFile(context.Background(), filepath.Join(root, "main.in"), []byte("@gen-include:d1.in@"), Vars{})
	assertKind(t, err, IncludeDepth)

	engine.MaxIncludeDepth = 3
	got, err := engine.ExpandFile(context.Background(), filepath.Join(root, "main.in"), []byte("@gen-include:d1.in@"), Vars{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "leaf" {
		t.Errorf("expected %q, got %q", "leaf", string(got))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid template", input: "@gen-if:a@@gen-var:b:int=1@@gen-endif@\n@gen-comment:x@"},
		{name: "unknown directive", input: "@gen-each:x@", wantErr: true},
		{name: "unclosed block", input: "@gen-if:a@", wantErr: true},
		{name: "empty if", input: "@gen-if:@x@gen-endif@", wantErr: true},
		{name: "bad var type", input: "@gen-var:a:list@", wantErr: true},
		{name: "inline comment", input: "x @gen-comment:y@", wantErr: true},
		{name: "empty include", input: "@gen-include:@", wantErr: true},
	}

	engine := NewEngine("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.Validate([]byte(tt.input))
			if tt.wantErr && err == nil {
				t.Error("expected error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestVariables(t *testing.T) {
	input := "@gen-var:pkg@ @gen-if:debug@@gen-var:level:int=1@@gen-endif@ @gen-var:pkg@ @gen-raw:@gen-var:hidden@@ @gen-comment:note@"
	got, err := NewEngine("").Variables([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"debug", "level", "pkg"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Variables() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"true", true},
		{"false", false},
		{"42", 42},
		{" -3 ", -3},
		{"lib", "lib"},
		{"1.5", "1.5"},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestVarsNames(t *testing.T) {
	got := Vars{"b": 1, "a": true, "c": "x"}.Names()
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

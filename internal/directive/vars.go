package directive

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Vars holds the values available to @gen-var: and @gen-if: directives.
// Values come from config files and --set flags, so numbers may arrive as
// int, int64 (TOML) or float64 (JSON).
type Vars map[string]interface{}

// Names returns the variable names in sorted order.
func (v Vars) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bool returns a boolean variable.
func (v Vars) Bool(name string) (bool, error) {
	val, ok := v[name]
	if !ok {
		return false, syntaxErr(MissingVariable, "", "condition variable not found: %s", name)
	}
	b, ok := val.(bool)
	if !ok {
		return false, syntaxErr(TypeMismatch, "", "condition variable %s is not a boolean (got %T)", name, val)
	}
	return b, nil
}

// ParseValue converts a command-line value: true/false become bool,
// integers become int, anything else stays a string.
func ParseValue(s string) interface{} {
	s = strings.TrimSpace(s)
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

// varSpec is the parsed argument of @gen-var:NAME[:TYPE][=DEFAULT]@.
type varSpec struct {
	name       string
	typ        string
	def        interface{}
	hasDefault bool
}

func parseVarSpec(args string) (varSpec, error) {
	var spec varSpec

	if i := strings.Index(args, "="); i != -1 {
		spec.hasDefault = true
		spec.def = ParseValue(args[i+1:])
		args = args[:i]
	}

	spec.name = strings.TrimSpace(args)
	if i := strings.Index(args, ":"); i != -1 {
		spec.name = strings.TrimSpace(args[:i])
		spec.typ = strings.TrimSpace(args[i+1:])
		switch spec.typ {
		case "string", "int", "bool":
		default:
			return spec, fmt.Errorf("invalid type %q (must be string, int, or bool)", spec.typ)
		}
	}

	if spec.name == "" {
		return spec, fmt.Errorf("variable name is empty")
	}

	if spec.typ != "" && spec.hasDefault && typeOf(spec.def) != spec.typ {
		coerced, err := coerce(spec.def, spec.typ)
		if err != nil {
			return spec, fmt.Errorf("default value type mismatch: expected %s, got %s", spec.typ, typeOf(spec.def))
		}
		spec.def = coerced
	}

	return spec, nil
}

// resolve returns the text substituted for a @gen-var: directive.
func (s varSpec) resolve(vars Vars, directive string) (string, error) {
	val, ok := vars[s.name]
	if !ok {
		if !s.hasDefault {
			return "", syntaxErr(MissingVariable, directive, "required variable not found: %s", s.name)
		}
		val = s.def
	}

	if s.typ != "" && typeOf(val) != s.typ {
		return "", syntaxErr(TypeMismatch, directive,
			"variable %s: expected %s but got %s", s.name, s.typ, typeOf(val))
	}

	return format(val), nil
}

func typeOf(val interface{}) string {
	switch val.(type) {
	case bool:
		return "bool"
	case int, int32, int64:
		return "int"
	case float64:
		// JSON numbers decode as float64; only whole values are ints.
		if v := val.(float64); v == math.Trunc(v) {
			return "int"
		}
		return "float"
	default:
		return "string"
	}
}

func coerce(val interface{}, typ string) (interface{}, error) {
	switch typ {
	case "string":
		return format(val), nil
	case "int":
		switch v := val.(type) {
		case string:
			return strconv.Atoi(v)
		case bool:
			return nil, fmt.Errorf("cannot coerce bool to int")
		}
		return val, nil
	case "bool":
		if s, ok := val.(string); ok {
			return strconv.ParseBool(s)
		}
		return nil, fmt.Errorf("cannot coerce %T to bool", val)
	}
	return nil, fmt.Errorf("unknown type: %s", typ)
}

func format(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

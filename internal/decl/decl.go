// Package decl parses member-variable and member-method descriptions into
// structured C++ declarations.
//
// Overview:
//   - Responsibility: Turn the free-form variables/methods strings into ordered declarations
//   - Key Types: Variable, Method, ClassSpec, MalformedDeclarationError
//   - Concurrency Model: Pure functions, no shared state; safe for concurrent use
//   - Error Semantics: MALFORMED_DECLARATION / INVALID_CLASS_NAME coded errors, never partial results
//   - Performance Notes: Single pass over each input string
//
// Usage:
//
//	spec, err := decl.Parse("Zombie", "std::string _name, int _hp", "void announce(), int hit(int dmg, bool crit)")
package decl

import (
	"strings"

	"go.eggybyte.com/classgen/core/errors"
)

// Variable is one member variable declaration.
type Variable struct {
	Type string
	Name string
}

// Method is one member method signature.
// Parameters holds the text between the parentheses, without them.
// Qualifiers holds trailing keywords such as "const" or "const noexcept".
type Method struct {
	ReturnType string
	Name       string
	Parameters string
	Qualifiers string
}

// ClassSpec is everything the renderer needs for one class.
type ClassSpec struct {
	ClassName string
	Variables []Variable
	Methods   []Method
}

// Parse validates the class name and parses both declaration lists.
func Parse(className, variablesText, methodsText string) (*ClassSpec, error) {
	className = strings.TrimSpace(className)
	if err := ValidateClassName(className); err != nil {
		return nil, err
	}

	variables, err := ParseVariables(variablesText)
	if err != nil {
		return nil, err
	}

	methods, err := ParseMethods(methodsText)
	if err != nil {
		return nil, err
	}

	return &ClassSpec{
		ClassName: className,
		Variables: variables,
		Methods:   methods,
	}, nil
}

// ValidateClassName reports an INVALID_CLASS_NAME error unless name is a
// usable C++ class identifier.
func ValidateClassName(name string) error {
	switch {
	case name == "":
		return errors.Build(errors.CodeInvalidClassName).
			WithOp("decl.ValidateClassName").
			WithMsg("class name is required").
			Err()
	case !IsIdentifier(name):
		return errors.Build(errors.CodeInvalidClassName).
			WithOp("decl.ValidateClassName").
			WithMsgf("class name %q is not a valid identifier", name).
			WithDetails("class", name).
			Err()
	case IsKeyword(name):
		return errors.Build(errors.CodeInvalidClassName).
			WithOp("decl.ValidateClassName").
			WithMsgf("class name %q is a reserved C++ keyword", name).
			WithDetails("class", name).
			Err()
	}
	return nil
}

// ParseVariables parses a comma-separated list of "<type> <name>" items.
// Empty or whitespace-only input yields an empty slice.
func ParseVariables(text string) ([]Variable, error) {
	items := splitItems(text)
	variables := make([]Variable, 0, len(items))

	for _, it := range items {
		if it.problem != "" {
			return nil, malformed("decl.ParseVariables", KindVariable, it, it.problem)
		}
		v, problem := parseVariable(it.text)
		if problem != "" {
			return nil, malformed("decl.ParseVariables", KindVariable, it, problem)
		}
		variables = append(variables, v)
	}

	return variables, nil
}

// ParseMethods parses a comma-separated list of "<returnType> <name>(<parameters>)"
// items. Commas inside a parameter list do not separate items.
func ParseMethods(text string) ([]Method, error) {
	items := splitItems(text)
	methods := make([]Method, 0, len(items))

	for _, it := range items {
		if it.problem != "" {
			return nil, malformed("decl.ParseMethods", KindMethod, it, it.problem)
		}
		m, problem := parseMethod(it.text)
		if problem != "" {
			return nil, malformed("decl.ParseMethods", KindMethod, it, problem)
		}
		methods = append(methods, m)
	}

	return methods, nil
}

func parseVariable(raw string) (Variable, string) {
	s := collapseSpace(raw)
	if s == "" {
		return Variable{}, "empty declaration"
	}

	idx := strings.LastIndexByte(s, ' ')
	if idx < 0 {
		return Variable{}, `expected "<type> <name>"`
	}

	typ, name := splitSigils(s[:idx], s[idx+1:])
	if problem := checkName(name, "member"); problem != "" {
		return Variable{}, problem
	}

	return Variable{Type: typ, Name: name}, ""
}

func parseMethod(raw string) (Method, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Method{}, "empty declaration"
	}

	open := strings.IndexByte(s, '(')
	if open < 0 {
		return Method{}, `expected "<returnType> <name>(<parameters>)"`
	}
	closing := matchParen(s, open)
	if closing < 0 {
		return Method{}, "unbalanced parentheses"
	}

	head := collapseSpace(s[:open])
	if head == "" {
		return Method{}, "missing method name"
	}

	idx := strings.LastIndexByte(head, ' ')
	if idx < 0 {
		if IsKeyword(head) {
			return Method{}, "missing method name"
		}
		if IsIdentifier(head) {
			return Method{}, "missing return type"
		}
		return Method{}, `expected "<returnType> <name>(<parameters>)"`
	}

	ret, name := splitSigils(head[:idx], head[idx+1:])
	if problem := checkName(name, "method"); problem != "" {
		return Method{}, problem
	}

	qualifiers := collapseSpace(s[closing+1:])
	if problem := checkQualifiers(qualifiers); problem != "" {
		return Method{}, problem
	}

	return Method{
		ReturnType: ret,
		Name:       name,
		Parameters: strings.TrimSpace(s[open+1 : closing]),
		Qualifiers: qualifiers,
	}, ""
}

// splitSigils moves leading '*' and '&' from a name token onto its type,
// so "int *p" parses as {int*, p}.
func splitSigils(typ, name string) (string, string) {
	trimmed := strings.TrimLeft(name, "*&")
	if n := len(name) - len(trimmed); n > 0 {
		typ += name[:n]
	}
	return typ, trimmed
}

func checkName(name, what string) string {
	switch {
	case name == "":
		return "missing " + what + " name"
	case !IsIdentifier(name):
		return "invalid " + what + " name " + quote(name)
	case IsKeyword(name):
		return what + " name " + quote(name) + " is a reserved keyword"
	}
	return ""
}

var allowedQualifiers = map[string]bool{
	"const":    true,
	"volatile": true,
	"noexcept": true,
	"override": true,
	"final":    true,
	"&":        true,
	"&&":       true,
}

func checkQualifiers(qualifiers string) string {
	if qualifiers == "" {
		return ""
	}
	for _, q := range strings.Split(qualifiers, " ") {
		if !allowedQualifiers[q] {
			return "unexpected text after parameter list: " + quote(q)
		}
	}
	return ""
}

// collapseSpace trims s and collapses internal whitespace runs to one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func quote(s string) string {
	return `"` + s + `"`
}

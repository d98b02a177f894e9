package render

import (
	"strings"

	"go.eggybyte.com/classgen/internal/decl"
)

// classView is the data handed to the class templates.
type classView struct {
	Name      string
	Guard     string
	Includes  []string
	Variables []decl.Variable
	Methods   []methodView
}

type methodView struct {
	Name        string
	Declaration string   // in-class, without the trailing ';'
	Definition  string   // out-of-class signature
	Placeholder []string // statements that keep a non-void stub well formed
}

func newClassView(spec *decl.ClassSpec, includes []string) classView {
	view := classView{
		Name:      spec.ClassName,
		Guard:     GuardToken(spec.ClassName),
		Variables: spec.Variables,
	}

	for _, inc := range includes {
		if strings.TrimSpace(inc) == "" {
			continue
		}
		view.Includes = append(view.Includes, normalizeInclude(inc))
	}

	for _, m := range spec.Methods {
		view.Methods = append(view.Methods, newMethodView(spec.ClassName, m))
	}

	return view
}

func newMethodView(className string, m decl.Method) methodView {
	declaration := m.ReturnType + " " + m.Name + "(" + m.Parameters + ")"
	if m.Qualifiers != "" {
		declaration += " " + m.Qualifiers
	}

	ret := definitionReturnType(m.ReturnType)
	def := ret + " " + className + "::" + m.Name + "(" + m.Parameters + ")"
	if q := definitionQualifiers(m.Qualifiers); q != "" {
		def += " " + q
	}

	return methodView{
		Name:        m.Name,
		Declaration: declaration,
		Definition:  def,
		Placeholder: placeholderReturn(className, ret, hasToken(m.ReturnType, "static")),
	}
}

// Specifiers that may only appear on the in-class declaration.
var declarationOnly = map[string]bool{
	"static":   true,
	"virtual":  true,
	"inline":   true,
	"explicit": true,
	"override": true,
	"final":    true,
}

func definitionReturnType(returnType string) string {
	return dropTokens(returnType)
}

func definitionQualifiers(qualifiers string) string {
	return dropTokens(qualifiers)
}

func hasToken(s, token string) bool {
	for _, f := range strings.Fields(s) {
		if f == token {
			return true
		}
	}
	return false
}

func dropTokens(s string) string {
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if !declarationOnly[f] {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

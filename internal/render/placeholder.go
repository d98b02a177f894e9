package render

import "strings"

var arithmeticWords = map[string]bool{
	"char": true, "wchar_t": true, "char8_t": true, "char16_t": true, "char32_t": true,
	"short": true, "int": true, "long": true, "signed": true, "unsigned": true,
	"float": true, "double": true,
	"size_t": true, "ssize_t": true, "ptrdiff_t": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"intptr_t": true, "uintptr_t": true,
}

// deducedNote replaces the return statement when the return type is deduced.
const deducedNote = "// Return type is deduced from the return statement added here."

// placeholderReturn returns the statements a stub needs so that a non-void
// function does not fall off its end. It returns nil for void. Static
// methods have no this, so a self reference falls back to a local static.
func placeholderReturn(className, returnType string, static bool) []string {
	t := strings.Join(strings.Fields(returnType), " ")
	if t == "" || t == "void" {
		return nil
	}
	if isDeduced(t) {
		return []string{deducedNote}
	}

	switch {
	case strings.HasSuffix(t, "&&"):
		base := stripCV(strings.TrimSpace(strings.TrimSuffix(t, "&&")))
		return []string{
			"static " + base + " value;",
			"return static_cast<" + base + "&&>(value);",
		}
	case strings.HasSuffix(t, "&"):
		base := stripCV(strings.TrimSpace(strings.TrimSuffix(t, "&")))
		if base == className && !static {
			return []string{"return *this;"}
		}
		return []string{
			"static " + base + " value;",
			"return value;",
		}
	case strings.HasSuffix(t, "*"):
		return []string{"return 0;"}
	}

	base := stripCV(t)
	if base == "bool" {
		return []string{"return false;"}
	}
	if isArithmetic(base) {
		return []string{"return 0;"}
	}
	return []string{"return " + base + "();"}
}

// isDeduced reports whether t uses auto or decltype(auto).
func isDeduced(t string) bool {
	for _, f := range strings.FieldsFunc(t, func(r rune) bool {
		return r == ' ' || r == '&' || r == '*' || r == '(' || r == ')'
	}) {
		if f == "auto" {
			return true
		}
	}
	return false
}

// stripCV removes const and volatile words from a type.
func stripCV(t string) string {
	fields := strings.Fields(t)
	kept := fields[:0]
	for _, f := range fields {
		if f != "const" && f != "volatile" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func isArithmetic(t string) bool {
	fields := strings.Fields(t)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !arithmeticWords[strings.TrimPrefix(f, "std::")] {
			return false
		}
	}
	return true
}

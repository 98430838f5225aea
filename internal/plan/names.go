package plan

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// exported returns s with its first rune upper-cased.
func exported(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// unexported returns s with its first rune lower-cased.
func unexported(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// FieldName derives the Go field name for a variant identifier:
// underscore-separated parts are capitalized and joined ("get_async"
// becomes "GetAsync"). Public-surface fields are always exported so callers
// can traverse the tree.
func FieldName(variant string) string {
	parts := strings.Split(variant, "_")
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(exported(part))
	}
	return b.String()
}

// storageFieldName is the unexported twin of FieldName, used for the
// goroutine-local storage tree. Names that collide with a Go keyword get a
// trailing underscore.
func storageFieldName(variant string) string {
	name := unexported(FieldName(variant))
	if goKeywords[name] {
		name += "_"
	}
	return name
}

// safeField renames value fields that would collide with a method on the
// generated struct, the same way protobuf codegen resolves collisions
// (e.g. a "get" variant next to the enum-keyed Get accessor).
func safeField(field string) string {
	switch field {
	case "Get", "Flush":
		return field + "_"
	}
	return field
}

// safeLocalField renames storage fields that would collide with the root
// struct's bookkeeping fields.
func safeLocalField(field string) string {
	switch field {
	case "leaves", "gate":
		return field + "_"
	}
	return field
}

// scopedBase is the stem of every type name derived for a metric. The
// underscore keeps (name, scope) pairs unambiguous: without it "A1" in
// scope 2 and "A" in scope 12 would both derive "A12".
func scopedBase(metric string, scope int) string {
	return fmt.Sprintf("%s_%d", metric, scope)
}

// paramName derives a Go parameter name from a label key, falling back to
// a positional name when the key does not sanitize to a usable identifier.
func paramName(key string, depth int, taken map[string]bool) string {
	var b strings.Builder
	for _, r := range key {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	name := unexported(b.String())
	if name == "" || !isIdentifier(name) || goKeywords[name] || taken[name] {
		name = fmt.Sprintf("label%d", depth)
	}
	taken[name] = true
	return name
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return s != ""
}

var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

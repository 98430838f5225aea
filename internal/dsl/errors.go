package dsl

import "fmt"

// Pos is a line/column position in the DSL source, 1-based.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// ParseError reports malformed DSL syntax. It names the offending token so
// callers can surface a useful diagnostic.
type ParseError struct {
	Pos   Pos
	Token string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: unexpected token %q: %s", e.Pos, e.Token, e.Msg)
}

// UndefinedEnumError reports a label referencing an enum that has not been
// declared at that point in the input stream.
type UndefinedEnumError struct {
	Enum   string
	Metric string
}

func (e *UndefinedEnumError) Error() string {
	return fmt.Sprintf("label enum %q is undefined (referenced by metric %q)", e.Enum, e.Metric)
}

// VisibilityError reports a public metric referencing a non-public enum.
type VisibilityError struct {
	Enum   string
	Metric string
}

func (e *VisibilityError) Error() string {
	return fmt.Sprintf("label enum %q is not public but is used in public metric %q", e.Enum, e.Metric)
}

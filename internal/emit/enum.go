package emit

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/neox5/promstatic/internal/dsl"
	"github.com/neox5/promstatic/internal/plan"
)

// emitEnum materializes one label enum: a discriminated int type, one
// constant per variant in declaration order, and the variant-to-label-string
// reverse table behind String().
func emitEnum(b *buf, e *dsl.EnumDef) {
	typeName := plan.EnumTypeName(e)

	b.pf("// %s enumerates the values of the %q label enum.\n", typeName, e.Name)
	b.pf("type %s int\n\n", typeName)

	b.p("const (\n")
	for i, v := range e.Variants {
		if i == 0 {
			b.pf("\t%s%s %s = iota\n", typeName, plan.FieldName(v.Name), typeName)
		} else {
			b.pf("\t%s%s\n", typeName, plan.FieldName(v.Name))
		}
	}
	b.p(")\n\n")

	table := enumTableName(e)
	values := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		values[i] = strconv.Quote(v.Value)
	}
	b.pf("var %s = [...]string{%s}\n\n", table, strings.Join(values, ", "))

	b.pf("// String returns the label string of the variant, or \"\" for an\n")
	b.pf("// undeclared value.\n")
	b.pf("func (v %s) String() string {\n", typeName)
	b.pf("\tif v < 0 || int(v) >= len(%s) {\n", table)
	b.p("\t\treturn \"\"\n")
	b.p("\t}\n")
	b.pf("\treturn %s[v]\n", table)
	b.p("}\n\n")
}

func enumTableName(e *dsl.EnumDef) string {
	r, size := utf8.DecodeRuneInString(e.Name)
	return string(unicode.ToLower(r)) + e.Name[size:] + "Strings"
}

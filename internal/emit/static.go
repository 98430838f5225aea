package emit

import (
	"strconv"
	"strings"

	"github.com/neox5/promstatic/internal/plan"
)

// emitStatic materializes the baseline (shared, non-auto-flush) tree for
// one metric: per-depth Inner structs, constructors resolving every label
// combination against the shared vector once, enum-keyed Get accessors,
// and the structurally symmetric no-op Flush.
func emitStatic(b *buf, p *plan.Plan) {
	for _, d := range p.Depths {
		emitStaticStruct(b, p, d)
	}
	for _, d := range p.Depths {
		emitStaticCtor(b, p, d)
	}
	for _, d := range p.Depths {
		if d.EnumType != "" {
			emitStaticGet(b, p, d)
		}
	}
	for _, d := range p.Depths {
		emitStaticFlush(b, p, d)
	}
}

// staticMemberType is the field type at depth d: the next depth's Inner
// type, or the concrete shared metric at the leaf.
func staticMemberType(p *plan.Plan, d plan.Depth) string {
	if d.Leaf {
		return p.Kind.LeafType
	}
	return p.Depths[d.Index+1].InnerType
}

func emitStaticStruct(b *buf, p *plan.Plan, d plan.Depth) {
	if d.Index == 0 {
		b.pf("// %s provides typed access to every label combination of a %s,\n", d.InnerType, strings.TrimPrefix(p.Kind.VecType, "*"))
		b.pf("// resolved once at construction time.\n")
	} else {
		b.pf("// %s is the subtree below one %q value.\n", d.InnerType, p.Depths[d.Index-1].Key)
	}
	b.pf("type %s struct {\n", d.InnerType)
	member := staticMemberType(p, d)
	for _, v := range d.Values {
		b.pf("\t%s %s\n", v.Field, member)
	}
	b.p("}\n\n")
}

func emitStaticCtor(b *buf, p *plan.Plan, d plan.Depth) {
	params := ctorParams(p, d.Index)
	if d.Index == 0 {
		b.pf("// %s resolves the full label tree against vec. Missing label\n", p.Ctor)
		b.pf("// dimensions panic, exactly as prometheus.Vec.With does.\n")
		b.pf("func %s(vec %s) *%s {\n", p.Ctor, p.Kind.VecType, d.InnerType)
		b.pf("\treturn &%s{\n", d.InnerType)
	} else {
		b.pf("func %s(vec %s%s) %s {\n", d.InnerCtor, p.Kind.VecType, params, d.InnerType)
		b.pf("\treturn %s{\n", d.InnerType)
	}
	for _, v := range d.Values {
		b.pf("\t\t%s: %s,\n", v.Field, staticFieldExpr(p, d, v))
	}
	b.p("\t}\n")
	b.p("}\n\n")
}

// ctorParams renders the ancestor label-value parameters for the depth-d
// constructor: one string per depth above d.
func ctorParams(p *plan.Plan, depth int) string {
	if depth == 0 {
		return ""
	}
	names := make([]string, depth)
	for i := 0; i < depth; i++ {
		names[i] = p.Depths[i].Param
	}
	return ", " + strings.Join(names, ", ") + " string"
}

func staticFieldExpr(p *plan.Plan, d plan.Depth, v plan.Value) string {
	if d.Leaf {
		return "vec.With(" + labelsLiteral(p, d, strconv.Quote(v.Label)) + ")"
	}
	args := make([]string, 0, d.Index+2)
	args = append(args, "vec")
	for i := 0; i < d.Index; i++ {
		args = append(args, p.Depths[i].Param)
	}
	args = append(args, strconv.Quote(v.Label))
	return p.Depths[d.Index+1].InnerCtor + "(" + strings.Join(args, ", ") + ")"
}

// labelsLiteral renders the full ancestor+own label mapping for one leaf.
// Ancestor values come in as constructor parameters; the leaf's own value
// is the pre-quoted ownValue.
func labelsLiteral(p *plan.Plan, d plan.Depth, ownValue string) string {
	var b strings.Builder
	b.WriteString("prometheus.Labels{")
	for i := 0; i < d.Index; i++ {
		b.WriteString(strconv.Quote(p.Depths[i].Key) + ": " + p.Depths[i].Param + ", ")
	}
	b.WriteString(strconv.Quote(d.Key) + ": " + ownValue + "}")
	return b.String()
}

func emitStaticGet(b *buf, p *plan.Plan, d plan.Depth) {
	retType := "*" + staticMemberType(p, d)
	retPrefix := "&"
	if d.Leaf {
		// Leaf members are interface values; return them directly.
		retType = p.Kind.LeafType
		retPrefix = ""
	}
	b.pf("// Get returns the %q subtree for v, or nil for an undeclared variant.\n", d.Key)
	b.pf("func (m *%s) Get(v %s) %s {\n", d.InnerType, d.EnumType, retType)
	b.p("\tswitch v {\n")
	for i, v := range d.Values {
		b.pf("\tcase %s:\n", d.EnumConsts[i])
		b.pf("\t\treturn %sm.%s\n", retPrefix, v.Field)
	}
	b.p("\t}\n")
	b.p("\treturn nil\n")
	b.p("}\n\n")
}

func emitStaticFlush(b *buf, p *plan.Plan, d plan.Depth) {
	if d.Index == 0 {
		b.p("// Flush is a no-op for shared metric kinds; it exists so both\n")
		b.p("// generation modes expose the same surface.\n")
	}
	if d.Leaf {
		b.pf("func (m *%s) Flush() {}\n\n", d.InnerType)
		return
	}
	b.pf("func (m *%s) Flush() {\n", d.InnerType)
	for _, v := range d.Values {
		b.pf("\tm.%s.Flush()\n", v.Field)
	}
	b.p("}\n\n")
}

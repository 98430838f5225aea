package emit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/neox5/promstatic/internal/plan"
)

// emitAutoFlush materializes the goroutine-local, auto-flushing variant for
// one metric: the arena-index constants, the per-goroutine storage tree,
// the delegator chain constructed once with precomputed indices, and the
// flush-gated mutators.
func emitAutoFlush(b *buf, p *plan.Plan, interval time.Duration) {
	emitAutoFlushConsts(b, p, interval)
	emitStorageStructs(b, p)
	emitStorageCtors(b, p)
	emitRootFlush(b, p)
	emitDelegatorTypes(b, p)
	emitHandleCtor(b, p)
	emitLeafMutators(b, p)
	emitHandleFlush(b, p)
	emitDelegatorGets(b, p)
}

func emitAutoFlushConsts(b *buf, p *plan.Plan, interval time.Duration) {
	b.pf("// %s gates implicit flushing of %s: a mutating access\n", p.FlushIntervalConst, p.OuterType)
	b.pf("// merges the goroutine's pending deltas once this much time passed since\n")
	b.pf("// the goroutine's previous flush.\n")
	b.pf("const %s = %s\n\n", p.FlushIntervalConst, durExpr(interval))

	if len(p.Depths) > 1 {
		b.p("const (\n")
		for _, d := range p.Depths {
			if d.StrideConst != "" {
				b.pf("\t%s = %d // leaves per %q value\n", d.StrideConst, d.Stride, d.Key)
			}
		}
		b.p(")\n\n")
	}

	b.p("// Arena indices of every leaf, in depth-first declaration order.\n")
	b.p("const (\n")
	for _, leaf := range p.Leaves {
		b.pf("\t%s = %d\n", leaf.ConstName, leaf.Index)
	}
	b.p(")\n\n")

	b.pf("const %s = %d\n\n", p.LeafCountConst, len(p.Leaves))
}

// storageMemberType is the storage field type at depth d.
func storageMemberType(p *plan.Plan, d plan.Depth) string {
	if d.Leaf {
		return p.Kind.LeafType
	}
	return p.Depths[d.Index+1].InnerType
}

func emitStorageStructs(b *buf, p *plan.Plan) {
	for _, d := range p.Depths {
		if d.Index == 0 {
			b.pf("// %s is one goroutine's private storage tree. The flat leaves\n", d.InnerType)
			b.p("// array is the arena the delegators index into; the nested fields share\n")
			b.p("// the same leaf instances. Only the owning goroutine ever mutates it.\n")
		}
		b.pf("type %s struct {\n", d.InnerType)
		member := storageMemberType(p, d)
		for _, v := range d.Values {
			b.pf("\t%s %s\n", v.LocalField, member)
		}
		if d.Index == 0 {
			b.nl()
			b.pf("\tleaves [%s]%s\n", p.LeafCountConst, p.Kind.LeafType)
			b.p("\tgate   localmetric.Gate\n")
		}
		b.p("}\n\n")
	}
}

// localLeafCtor is the localmetric constructor matching the leaf type, e.g.
// "*localmetric.Counter" -> "localmetric.NewCounter".
func localLeafCtor(leafType string) string {
	name := strings.TrimPrefix(leafType, "*localmetric.")
	return "localmetric.New" + name
}

func emitStorageCtors(b *buf, p *plan.Plan) {
	for _, d := range p.Depths {
		switch {
		case d.Index == 0:
			emitRootCtor(b, p, d)
		case d.Leaf:
			emitLeafDepthCtor(b, p, d)
		default:
			emitMiddleDepthCtor(b, p, d)
		}
	}
}

func emitRootCtor(b *buf, p *plan.Plan, d plan.Depth) {
	root := d.InnerType
	b.pf("func %s(vec %s) *%s {\n", d.InnerCtor, p.Kind.VecType, root)
	b.pf("\troot := &%s{gate: localmetric.NewGate(%s)}\n", root, p.FlushIntervalConst)
	if d.Leaf {
		// Single-label metric: the root is also the leaf depth.
		for _, v := range d.Values {
			b.pf("\troot.%s = %s(vec.With(%s))\n", v.LocalField, localLeafCtor(p.Kind.LeafType), labelsLiteral(p, d, strconv.Quote(v.Label)))
		}
		for i, v := range d.Values {
			b.pf("\troot.leaves[%s] = root.%s\n", p.Leaves[i].ConstName, v.LocalField)
		}
	} else {
		for i, v := range d.Values {
			b.pf("\troot.%s = %s(root, vec, %d*%s, %s)\n",
				v.LocalField, p.Depths[1].InnerCtor, i, d.StrideConst, strconv.Quote(v.Label))
		}
	}
	b.p("\treturn root\n")
	b.p("}\n\n")
}

func emitMiddleDepthCtor(b *buf, p *plan.Plan, d plan.Depth) {
	rootType := p.Depths[0].InnerType
	b.pf("func %s(root *%s, vec %s, base int%s) %s {\n",
		d.InnerCtor, rootType, p.Kind.VecType, ctorParams(p, d.Index), d.InnerType)
	b.pf("\treturn %s{\n", d.InnerType)
	next := p.Depths[d.Index+1]
	for i, v := range d.Values {
		args := []string{"root", "vec", fmt.Sprintf("base+%d*%s", i, d.StrideConst)}
		for j := 0; j < d.Index; j++ {
			args = append(args, p.Depths[j].Param)
		}
		args = append(args, strconv.Quote(v.Label))
		b.pf("\t\t%s: %s(%s),\n", v.LocalField, next.InnerCtor, strings.Join(args, ", "))
	}
	b.p("\t}\n")
	b.p("}\n\n")
}

func emitLeafDepthCtor(b *buf, p *plan.Plan, d plan.Depth) {
	rootType := p.Depths[0].InnerType
	b.pf("func %s(root *%s, vec %s, base int%s) %s {\n",
		d.InnerCtor, rootType, p.Kind.VecType, ctorParams(p, d.Index), d.InnerType)
	b.pf("\ts := %s{\n", d.InnerType)
	for _, v := range d.Values {
		b.pf("\t\t%s: %s(vec.With(%s)),\n", v.LocalField, localLeafCtor(p.Kind.LeafType), labelsLiteral(p, d, strconv.Quote(v.Label)))
	}
	b.p("\t}\n")
	for i, v := range d.Values {
		b.pf("\troot.leaves[base+%d] = s.%s\n", i, v.LocalField)
	}
	b.p("\treturn s\n")
	b.p("}\n\n")
}

func emitRootFlush(b *buf, p *plan.Plan) {
	root := p.Depths[0].InnerType
	b.p("// flush merges every pending local delta into the shared vector and\n")
	b.p("// re-arms the gate.\n")
	b.pf("func (s *%s) flush() {\n", root)
	b.p("\tfor _, leaf := range s.leaves {\n")
	b.p("\t\tleaf.Flush()\n")
	b.p("\t}\n")
	b.p("\ts.gate.Reset()\n")
	b.p("}\n\n")

	b.pf("func (s *%s) maybeFlush() {\n", root)
	b.p("\tif s.gate.Due() {\n")
	b.p("\t\ts.flush()\n")
	b.p("\t}\n")
	b.p("}\n\n")
}

func emitDelegatorTypes(b *buf, p *plan.Plan) {
	rootType := p.Depths[0].InnerType

	b.pf("// %s is the statically named, goroutine-shared handle. Field access\n", p.OuterType)
	b.p("// mirrors the declared label hierarchy down to leaf delegators that resolve\n")
	b.p("// the calling goroutine's own local metric in O(1).\n")
	b.pf("type %s struct {\n", p.OuterType)
	for _, v := range p.Depths[0].Values {
		b.pf("\t%s *%s\n", v.Field, p.Depths[0].DelegatorType)
	}
	b.nl()
	b.pf("\tslot *localmetric.Slot[%s]\n", rootType)
	b.p("}\n\n")

	for _, d := range p.Depths {
		if d.Leaf {
			b.pf("// %s resolves one fully labeled local metric for the\n", d.DelegatorType)
			b.p("// calling goroutine via its precomputed arena index.\n")
			b.pf("type %s struct {\n", d.DelegatorType)
			b.pf("\tslot *localmetric.Slot[%s]\n", rootType)
			b.p("\tidx  int\n")
			b.p("}\n\n")
			continue
		}
		next := p.Depths[d.Index+1]
		b.pf("type %s struct {\n", d.DelegatorType)
		for _, v := range next.Values {
			b.pf("\t%s *%s\n", v.Field, next.DelegatorType)
		}
		b.p("}\n\n")
	}
}

func emitHandleCtor(b *buf, p *plan.Plan) {
	b.pf("// %s builds the handle and its delegator chain exactly once with\n", p.Ctor)
	b.p("// precomputed arena indices; per-goroutine storage is created lazily on\n")
	b.p("// first access through any delegator.\n")
	b.pf("func %s(vec %s) *%s {\n", p.Ctor, p.Kind.VecType, p.OuterType)
	b.pf("\tslot := localmetric.NewSlot(func() *%s { return %s(vec) })\n",
		p.Depths[0].InnerType, p.Depths[0].InnerCtor)
	b.pf("\treturn &%s{\n", p.OuterType)
	b.p("\t\tslot: slot,\n")
	for i, v := range p.Depths[0].Values {
		emitDelegatorLiteral(b, p, 1, []int{i}, v.Field, 2)
	}
	b.p("\t}\n")
	b.p("}\n\n")
}

// emitDelegatorLiteral writes the composite literal for the delegator node
// covering the label path prefix in path. The leaf index is the sum of the
// per-depth value positions weighted by their strides, named by the
// planner's index constant.
func emitDelegatorLiteral(b *buf, p *plan.Plan, prefixLen int, path []int, field string, indent int) {
	tabs := strings.Repeat("\t", indent)
	typ := p.Depths[prefixLen-1].DelegatorType

	if prefixLen == len(p.Depths) {
		idx := 0
		for d, pos := range path {
			idx += pos * p.Depths[d].Stride
		}
		b.pf("%s%s: &%s{slot: slot, idx: %s},\n", tabs, field, typ, p.Leaves[idx].ConstName)
		return
	}

	b.pf("%s%s: &%s{\n", tabs, field, typ)
	for i, v := range p.Depths[prefixLen].Values {
		child := make([]int, len(path)+1)
		copy(child, path)
		child[len(path)] = i
		emitDelegatorLiteral(b, p, prefixLen+1, child, v.Field, indent+1)
	}
	b.pf("%s},\n", tabs)
}

func emitLeafMutators(b *buf, p *plan.Plan) {
	leaf := p.Depths[len(p.Depths)-1].DelegatorType

	switch p.Kind.LeafType {
	case "*localmetric.Counter":
		b.p("// Inc adds 1 to the calling goroutine's local counter. The goroutine's\n")
		b.p("// whole tree self-flushes when the flush interval has elapsed.\n")
		b.pf("func (d *%s) Inc() {\n", leaf)
		b.p("\troot := d.slot.Get()\n")
		b.p("\troot.leaves[d.idx].Inc()\n")
		b.p("\troot.maybeFlush()\n")
		b.p("}\n\n")

		b.p("// Add adds v to the calling goroutine's local counter. It panics if v\n")
		b.p("// is negative.\n")
		b.pf("func (d *%s) Add(v float64) {\n", leaf)
		b.p("\troot := d.slot.Get()\n")
		b.p("\troot.leaves[d.idx].Add(v)\n")
		b.p("\troot.maybeFlush()\n")
		b.p("}\n\n")
	case "*localmetric.Histogram":
		b.p("// Observe records v in the calling goroutine's local histogram. The\n")
		b.p("// goroutine's whole tree self-flushes when the flush interval has elapsed.\n")
		b.pf("func (d *%s) Observe(v float64) {\n", leaf)
		b.p("\troot := d.slot.Get()\n")
		b.p("\troot.leaves[d.idx].Observe(v)\n")
		b.p("\troot.maybeFlush()\n")
		b.p("}\n\n")
	}
}

func emitHandleFlush(b *buf, p *plan.Plan) {
	b.p("// Flush immediately merges the calling goroutine's pending deltas into\n")
	b.p("// the shared vector, bypassing the flush interval. It never touches\n")
	b.p("// another goroutine's local tree; goroutines that never touched the\n")
	b.p("// metric have nothing to flush.\n")
	b.pf("func (m *%s) Flush() {\n", p.OuterType)
	b.p("\tif root, ok := m.slot.Load(); ok {\n")
	b.p("\t\troot.flush()\n")
	b.p("\t}\n")
	b.p("}\n\n")
}

func emitDelegatorGets(b *buf, p *plan.Plan) {
	for _, d := range p.Depths {
		if d.EnumType == "" {
			continue
		}
		recv := p.OuterType
		if d.Index > 0 {
			recv = p.Depths[d.Index-1].DelegatorType
		}
		b.pf("// Get returns the %q delegator for v, or nil for an undeclared\n", d.Key)
		b.p("// variant.\n")
		b.pf("func (m *%s) Get(v %s) *%s {\n", recv, d.EnumType, d.DelegatorType)
		b.p("\tswitch v {\n")
		for i, v := range d.Values {
			b.pf("\tcase %s:\n", d.EnumConsts[i])
			b.pf("\t\treturn m.%s\n", v.Field)
		}
		b.p("\t}\n")
		b.p("\treturn nil\n")
		b.p("}\n\n")
	}
}

// durExpr renders a duration as a readable Go constant expression.
func durExpr(d time.Duration) string {
	switch {
	case d%time.Second == 0:
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	case d%time.Millisecond == 0:
		return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
	case d%time.Microsecond == 0:
		return fmt.Sprintf("%d * time.Microsecond", d/time.Microsecond)
	default:
		return fmt.Sprintf("%d * time.Nanosecond", d.Nanoseconds())
	}
}

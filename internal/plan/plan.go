package plan

import (
	"fmt"

	"github.com/neox5/promstatic/internal/dsl"
)

// maxLeafCount caps the label-space size one metric may span. The arena
// index of every leaf must stay a small non-negative int.
const maxLeafCount = 1 << 16

// Plan is the derived naming and layout plan for one metric definition.
// It is a deterministic function of the metric definition, the enum
// definitions it references, and the scope number handed out by the
// Context.
type Plan struct {
	Metric *dsl.MetricDef
	Scope  int
	Kind   KindInfo

	// OuterType is the depth-0 public handle exposed to application code.
	OuterType string
	// Ctor is the name of the handle constructor (NewXxx).
	Ctor string

	Depths []Depth
	Leaves []Leaf

	// Constant names emitted alongside the generated types.
	LeafCountConst     string
	FlushIntervalConst string
}

// KindInfo maps a DSL metric kind onto concrete Go collaborator types.
type KindInfo struct {
	Kind    dsl.Kind
	Local   bool
	VecType string // e.g. "*prometheus.CounterVec"
	// LeafType is the generated leaf field type: the shared metric for
	// baseline kinds, the goroutine-local shadow for Local* kinds.
	LeafType string
}

// Depth is the plan for one nesting level of the label hierarchy.
type Depth struct {
	Index int
	Leaf  bool
	Key   string

	// EnumType and EnumConsts are set when the depth's label was declared
	// via a named enum; they drive the O(1) Get accessor.
	EnumType   string
	EnumConsts []string

	Values []Value

	InnerType string
	InnerCtor string
	// DelegatorType is the node type for a label path of length Index+1
	// (Local kinds only; the leaf depth's delegator carries the arena
	// index).
	DelegatorType string
	// Param is the Go parameter name carrying this depth's label value in
	// the per-depth constructors.
	Param string
	// Stride is the number of leaves spanned by one value choice at this
	// depth.
	Stride int
	// StrideConst names the emitted stride constant ("" at the leaf depth,
	// where the stride is 1).
	StrideConst string
}

// Value is one label value at a depth with its derived field names.
type Value struct {
	Field      string // generated field name on the public surface
	LocalField string // unexported field name in the goroutine-local storage tree
	Label      string // label string looked up in the shared vector
}

// Leaf is one fully-qualified label path through the hierarchy.
type Leaf struct {
	Index     int
	ConstName string
	Fields    []string // field path from the root, one name per depth
	Labels    []Label  // key/value pairs in depth order
}

// Label is a single resolved label pair.
type Label struct {
	Key   string
	Value string
}

// Build computes the plan for one metric definition, consuming the next
// scope number from ctx. Enum references must already be validated; enums
// maps them to their definitions.
func Build(ctx *Context, metric *dsl.MetricDef, enums map[string]*dsl.EnumDef) (*Plan, error) {
	if len(metric.Labels) == 0 {
		return nil, &LayoutError{Metric: metric.Name, Msg: "no labels declared"}
	}

	kind, err := kindInfo(metric.Kind)
	if err != nil {
		return nil, fmt.Errorf("metric %q: %w", metric.Name, err)
	}

	scope := ctx.nextScope()
	base := scopedBase(metric.Name, scope)

	outer := unexported(metric.Name)
	delegatorBase := unexported(base)
	if metric.Public {
		outer = exported(metric.Name)
		delegatorBase = exported(base)
	}

	p := &Plan{
		Metric:             metric,
		Scope:              scope,
		Kind:               kind,
		OuterType:          outer,
		Ctor:               ctorName(metric.Public, metric.Name),
		LeafCountConst:     unexported(base) + "LeafCount",
		FlushIntervalConst: unexported(base) + "FlushInterval",
	}

	// Resolve per-depth values and names.
	taken := make(map[string]bool)
	for i, label := range metric.Labels {
		depth := Depth{
			Index: i,
			Leaf:  i == len(metric.Labels)-1,
			Key:   label.Key,
			Param: paramName(label.Key, i, taken),
		}

		variants := label.Values
		if label.EnumRef != "" {
			enum := enums[label.EnumRef]
			if enum == nil {
				return nil, &dsl.UndefinedEnumError{Enum: label.EnumRef, Metric: metric.Name}
			}
			variants = enum.Variants
			depth.EnumType = EnumTypeName(enum)
			for _, v := range enum.Variants {
				depth.EnumConsts = append(depth.EnumConsts, depth.EnumType+FieldName(v.Name))
			}
		}
		if len(variants) == 0 {
			return nil, &LayoutError{
				Metric: metric.Name,
				Msg:    fmt.Sprintf("label %q has no values", label.Key),
			}
		}
		for _, v := range variants {
			depth.Values = append(depth.Values, Value{
				Field:      safeField(FieldName(v.Name)),
				LocalField: safeLocalField(storageFieldName(v.Name)),
				Label:      v.Value,
			})
		}

		depth.InnerType = innerTypeName(metric, base, i)
		depth.InnerCtor = "new" + exported(depth.InnerType)
		if kind.Local {
			depth.DelegatorType = fmt.Sprintf("%sDelegator%d", delegatorBase, i+1)
		}
		p.Depths = append(p.Depths, depth)
	}

	// Strides and the symbolic leaf-index table, innermost depth first.
	stride := 1
	for i := len(p.Depths) - 1; i >= 0; i-- {
		p.Depths[i].Stride = stride
		if !p.Depths[i].Leaf {
			p.Depths[i].StrideConst = fmt.Sprintf("%sStride%d", unexported(base), i)
		}
		if stride > maxLeafCount/len(p.Depths[i].Values) {
			return nil, &LayoutError{
				Metric: metric.Name,
				Msg:    fmt.Sprintf("label space exceeds %d leaves", maxLeafCount),
			}
		}
		stride *= len(p.Depths[i].Values)
	}

	p.Leaves = enumerateLeaves(p, base)
	return p, nil
}

// enumerateLeaves walks the value space depth first in declaration order,
// which makes each leaf's index the mixed-radix composition of its per-depth
// value positions.
func enumerateLeaves(p *Plan, base string) []Leaf {
	total := 1
	for _, d := range p.Depths {
		total *= len(d.Values)
	}

	leaves := make([]Leaf, 0, total)
	path := make([]int, len(p.Depths))
	for idx := 0; idx < total; idx++ {
		leaf := Leaf{Index: idx, ConstName: unexported(base) + "Idx"}
		for d, depth := range p.Depths {
			v := depth.Values[path[d]]
			leaf.ConstName += v.Field
			leaf.Fields = append(leaf.Fields, v.Field)
			leaf.Labels = append(leaf.Labels, Label{Key: depth.Key, Value: v.Label})
		}
		leaves = append(leaves, leaf)

		// Odometer step over the value positions.
		for d := len(path) - 1; d >= 0; d-- {
			path[d]++
			if path[d] < len(p.Depths[d].Values) {
				break
			}
			path[d] = 0
		}
	}
	return leaves
}

func innerTypeName(metric *dsl.MetricDef, base string, depth int) string {
	if metric.Kind.Local() {
		// Goroutine-local storage is an implementation detail; its types
		// are never part of the public surface.
		return fmt.Sprintf("%sInner%d", unexported(base), depth)
	}
	if depth == 0 {
		if metric.Public {
			return exported(metric.Name)
		}
		return unexported(metric.Name)
	}
	if metric.Public {
		return fmt.Sprintf("%sInner%d", exported(base), depth)
	}
	return fmt.Sprintf("%sInner%d", unexported(base), depth)
}

func ctorName(public bool, name string) string {
	if public {
		return "New" + exported(name)
	}
	return "new" + exported(name)
}

// EnumTypeName is the generated Go type name for a label enum; the label
// enum emitter and the Get accessors must agree on it.
func EnumTypeName(enum *dsl.EnumDef) string {
	if enum.Public {
		return exported(enum.Name)
	}
	return unexported(enum.Name)
}

func kindInfo(kind dsl.Kind) (KindInfo, error) {
	switch kind {
	case dsl.KindCounter, dsl.KindIntCounter:
		return KindInfo{Kind: kind, VecType: "*prometheus.CounterVec", LeafType: "prometheus.Counter"}, nil
	case dsl.KindGauge, dsl.KindIntGauge:
		return KindInfo{Kind: kind, VecType: "*prometheus.GaugeVec", LeafType: "prometheus.Gauge"}, nil
	case dsl.KindHistogram:
		return KindInfo{Kind: kind, VecType: "*prometheus.HistogramVec", LeafType: "prometheus.Observer"}, nil
	case dsl.KindLocalCounter, dsl.KindLocalIntCounter:
		return KindInfo{Kind: kind, Local: true, VecType: "*prometheus.CounterVec", LeafType: "*localmetric.Counter"}, nil
	case dsl.KindLocalHistogram:
		return KindInfo{Kind: kind, Local: true, VecType: "*prometheus.HistogramVec", LeafType: "*localmetric.Histogram"}, nil
	}
	return KindInfo{}, fmt.Errorf("unsupported metric kind %q", kind)
}

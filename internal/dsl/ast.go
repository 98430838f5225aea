package dsl

import "strings"

// Kind identifies the concrete metric type a definition generates against.
type Kind string

const (
	KindCounter         Kind = "Counter"
	KindIntCounter      Kind = "IntCounter"
	KindGauge           Kind = "Gauge"
	KindIntGauge        Kind = "IntGauge"
	KindHistogram       Kind = "Histogram"
	KindLocalCounter    Kind = "LocalCounter"
	KindLocalIntCounter Kind = "LocalIntCounter"
	KindLocalHistogram  Kind = "LocalHistogram"
)

// Local reports whether the kind generates the goroutine-local,
// auto-flushing variant.
func (k Kind) Local() bool {
	return strings.HasPrefix(string(k), "Local")
}

// Valid reports whether k is a known metric kind.
func (k Kind) Valid() bool {
	switch k {
	case KindCounter, KindIntCounter, KindGauge, KindIntGauge, KindHistogram,
		KindLocalCounter, KindLocalIntCounter, KindLocalHistogram:
		return true
	}
	return false
}

// File is the parsed form of one DSL source. Items keep declaration order,
// which matters for declare-before-use enum resolution and for scope
// numbering.
type File struct {
	Items []Item
}

// Item is either an enum definition or a metric definition.
type Item struct {
	Enum   *EnumDef
	Metric *MetricDef
}

// EnumDef is a reusable named label-value domain.
type EnumDef struct {
	Name     string
	Public   bool
	Variants []Variant
	Pos      Pos
}

// Variant is one label value: a field identifier plus the label string it
// maps to. For bare identifiers the label string is the identifier folded
// to lower case.
type Variant struct {
	Name  string
	Value string
	Pos   Pos
}

// MetricDef is one metric family with an ordered label hierarchy. The label
// order fixes the nesting depth of the generated tree; the last label is
// the leaf depth.
type MetricDef struct {
	Name   string
	Public bool
	Kind   Kind
	Labels []LabelDef
	Pos    Pos
}

// LabelDef is one label dimension, valued either by an inline variant list
// or by a reference to a previously declared enum.
type LabelDef struct {
	Key     string
	Values  []Variant // inline form
	EnumRef string    // reference form; empty for inline
	Pos     Pos
}

package plan

import "fmt"

// LayoutError reports a metric definition whose generated structure would
// be impossible: no labels, a depth with no values, or a label space too
// large to index.
type LayoutError struct {
	Metric string
	Msg    string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("metric %q has an impossible layout: %s", e.Metric, e.Msg)
}

package emit

import (
	"bytes"
	"fmt"
	"go/format"
)

// buf accumulates generated source before gofmt.
type buf struct {
	bytes.Buffer
}

func (b *buf) pf(format string, args ...any) {
	fmt.Fprintf(&b.Buffer, format, args...)
}

func (b *buf) p(s string) {
	b.WriteString(s)
}

func (b *buf) nl() {
	b.WriteByte('\n')
}

// gofmt formats the assembled file. A formatting failure means the emitter
// produced syntactically broken Go, which is a generator bug, not an input
// error; the raw source is included in the error for debugging.
func gofmt(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w\n%s", err, src)
	}
	return out, nil
}

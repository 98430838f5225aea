package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LabelEnum(t *testing.T) {
	f, err := Parse(`
		pub label_enum Methods {
			post,
			get,
			put,
			delete,
		}
	`)
	require.NoError(t, err)
	require.Len(t, f.Items, 1)

	e := f.Items[0].Enum
	require.NotNil(t, e)
	assert.Equal(t, "Methods", e.Name)
	assert.True(t, e.Public)
	require.Len(t, e.Variants, 4)
	assert.Equal(t, "post", e.Variants[0].Name)
	assert.Equal(t, "post", e.Variants[0].Value)
}

func TestParse_EnumExplicitValues(t *testing.T) {
	f, err := Parse(`label_enum Versions { HTTP1: "HTTP/1", HTTP2: "HTTP/2" }`)
	require.NoError(t, err)

	e := f.Items[0].Enum
	require.NotNil(t, e)
	assert.False(t, e.Public)
	require.Len(t, e.Variants, 2)
	assert.Equal(t, "HTTP1", e.Variants[0].Name)
	assert.Equal(t, "HTTP/1", e.Variants[0].Value)
}

func TestParse_BareVariantIsCaseFolded(t *testing.T) {
	f, err := Parse(`label_enum E { Post }`)
	require.NoError(t, err)
	assert.Equal(t, "post", f.Items[0].Enum.Variants[0].Value)
}

func TestParse_Metric(t *testing.T) {
	f, err := Parse(`
		pub label_enum FooBar { foo, bar }
		pub label_enum Methods { post, get, put, delete }

		pub struct Lhrs: LocalHistogram {
			"product" => FooBar,
			"method" => Methods,
			"version" => {
				http1: "HTTP/1",
				http2: "HTTP/2",
			},
		}
	`)
	require.NoError(t, err)
	require.Len(t, f.Items, 3)

	m := f.Items[2].Metric
	require.NotNil(t, m)
	assert.Equal(t, "Lhrs", m.Name)
	assert.True(t, m.Public)
	assert.Equal(t, KindLocalHistogram, m.Kind)
	assert.True(t, m.Kind.Local())

	require.Len(t, m.Labels, 3)
	assert.Equal(t, "product", m.Labels[0].Key)
	assert.Equal(t, "FooBar", m.Labels[0].EnumRef)
	assert.Empty(t, m.Labels[0].Values)

	assert.Equal(t, "version", m.Labels[2].Key)
	assert.Empty(t, m.Labels[2].EnumRef)
	require.Len(t, m.Labels[2].Values, 2)
	assert.Equal(t, "http1", m.Labels[2].Values[0].Name)
	assert.Equal(t, "HTTP/1", m.Labels[2].Values[0].Value)
}

func TestParse_MetricWithoutTrailingComma(t *testing.T) {
	f, err := Parse(`struct Hits: Counter { "product" => { foo, bar } }`)
	require.NoError(t, err)

	m := f.Items[0].Metric
	require.NotNil(t, m)
	assert.False(t, m.Public)
	assert.Equal(t, KindCounter, m.Kind)
	assert.False(t, m.Kind.Local())
}

func TestParse_Comments(t *testing.T) {
	f, err := Parse(`
		// request outcome domain
		label_enum Outcome { ok, failed } // trailing note
	`)
	require.NoError(t, err)
	require.Len(t, f.Items, 1)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		token string
	}{
		{
			name:  "unknown metric kind",
			src:   `struct S: Meter { "a" => { x } }`,
			token: "Meter",
		},
		{
			name:  "missing arrow",
			src:   `struct S: Counter { "a" { x } }`,
			token: "{",
		},
		{
			name:  "label key must be a string",
			src:   `struct S: Counter { a => { x } }`,
			token: "a",
		},
		{
			name:  "stray top-level token",
			src:   `enum E { a }`,
			token: "enum",
		},
		{
			name:  "unterminated string",
			src:   `struct S: Counter { "a`,
			token: `"`,
		},
		{
			name:  "lone equals",
			src:   `struct S: Counter { "a" = { x } }`,
			token: "=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.src)
			require.Error(t, err)
			assert.Nil(t, f, "no partial AST on parse failure")

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.token, perr.Token)
			assert.Positive(t, perr.Pos.Line)
		})
	}
}

func TestParseError_NamesPosition(t *testing.T) {
	_, err := Parse("label_enum E {\n\tok,\n\t5bad,\n}")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Pos.Line)
}

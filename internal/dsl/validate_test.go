package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse(src)
	require.NoError(t, err)
	return f
}

func TestValidate_ResolvesEnums(t *testing.T) {
	f := mustParse(t, `
		pub label_enum Methods { post, get }
		pub struct Requests: LocalCounter {
			"method" => Methods,
		}
	`)

	enums, err := Validate(f)
	require.NoError(t, err)
	require.Contains(t, enums, "Methods")
	assert.Len(t, enums["Methods"].Variants, 2)
}

func TestValidate_UndefinedEnum(t *testing.T) {
	f := mustParse(t, `
		struct Requests: Counter {
			"method" => Methods,
		}
	`)

	_, err := Validate(f)
	var uerr *UndefinedEnumError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "Methods", uerr.Enum)
	assert.Equal(t, "Requests", uerr.Metric)
}

func TestValidate_DeclareBeforeUse(t *testing.T) {
	// The enum exists in the file but only after the metric referencing it;
	// the single forward pass must reject this.
	f := mustParse(t, `
		struct Requests: Counter {
			"method" => Methods,
		}
		label_enum Methods { post, get }
	`)

	_, err := Validate(f)
	var uerr *UndefinedEnumError
	require.ErrorAs(t, err, &uerr)
}

func TestValidate_Visibility(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{
			name: "public metric with private enum",
			src: `
				label_enum Methods { post }
				pub struct Requests: Counter { "method" => Methods }
			`,
			wantErr: true,
		},
		{
			name: "public metric with public enum",
			src: `
				pub label_enum Methods { post }
				pub struct Requests: Counter { "method" => Methods }
			`,
		},
		{
			name: "private metric with private enum",
			src: `
				label_enum Methods { post }
				struct Requests: Counter { "method" => Methods }
			`,
		},
		{
			name: "private metric with public enum",
			src: `
				pub label_enum Methods { post }
				struct Requests: Counter { "method" => Methods }
			`,
		},
		{
			name: "public metric with inline values only",
			src: `
				pub struct Requests: Counter { "method" => { post, get } }
			`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(mustParse(t, tt.src))
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var verr *VisibilityError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Methods", verr.Enum)
			assert.Equal(t, "Requests", verr.Metric)
		})
	}
}

package generator

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDSL = `
pub label_enum Methods {
	post,
	get,
}

pub struct Requests: LocalIntCounter {
	"method" => Methods,
}
`

func TestGenerate_ProducesParsableGo(t *testing.T) {
	out, err := New().Generate([]byte(sampleDSL), Options{
		Package:       "stats",
		FlushInterval: time.Second,
	})
	require.NoError(t, err)

	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", out, 0)
	require.NoError(t, err)
	assert.Equal(t, "stats", f.Name.Name)
}

func TestGenerate_ParseErrorAborts(t *testing.T) {
	_, err := New().Generate([]byte(`struct Bad: Meter {}`), Options{Package: "stats"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "parsing DSL")
}

func TestGenerate_ValidationErrorAborts(t *testing.T) {
	_, err := New().Generate([]byte(`struct M: Counter { "a" => Missing }`), Options{Package: "stats"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "validating DSL")
}

func TestGenerate_ScopesAdvanceAcrossCalls(t *testing.T) {
	g := New()

	first, err := g.Generate([]byte(sampleDSL), Options{Package: "stats"})
	require.NoError(t, err)
	second, err := g.Generate([]byte(sampleDSL), Options{Package: "stats"})
	require.NoError(t, err)

	assert.Contains(t, string(first), "requests_0IdxPost")
	assert.Contains(t, string(second), "requests_1IdxPost")
}

func TestGenerateFile_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "metrics.dsl")
	out := filepath.Join(dir, "metrics_gen.go")
	require.NoError(t, os.WriteFile(in, []byte(sampleDSL), 0o644))

	err := New().GenerateFile(in, out, Options{Package: "stats"})
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	_, err = parser.ParseFile(token.NewFileSet(), out, src, 0)
	assert.NoError(t, err)
}

func TestGenerateFile_FailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "metrics.dsl")
	out := filepath.Join(dir, "metrics_gen.go")
	require.NoError(t, os.WriteFile(in, []byte(`struct Bad: Meter {}`), 0o644))

	err := New().GenerateFile(in, out, Options{Package: "stats"})
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "failed generation must not leave an output file")

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "failed generation must not leave temp files")
}

func TestGenerateFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := New().GenerateFile(filepath.Join(dir, "nope.dsl"), filepath.Join(dir, "out.go"), Options{Package: "stats"})
	assert.ErrorContains(t, err, "reading")
}

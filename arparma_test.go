package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResult() *Arparma {
	r := newArparma(newArgv(""))
	r.Matched = true
	r.MainArgs["name"] = "alice"

	opt := &OptionResult{Value: true, Args: Bindings{"count": int64(3)}}
	r.Options.Set("--verbose", opt)

	sub := newSubcommandResult()
	sub.Value = true
	sub.Args = Bindings{"target": "build"}

	nested := &OptionResult{Value: true, Args: Bindings{}}
	sub.Options.Set("--force", nested)

	r.Subcommands.Set("deploy", sub)

	return r
}

func TestQueryMainArgs(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	v, err := r.Query("name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)
}

func TestQueryOptionValueAndArg(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	v, err := r.Query("--verbose.value")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = r.Query("--verbose.count")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestQuerySubcommandNestedOption(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	v, err := r.Query("deploy.target")
	require.NoError(t, err)
	assert.Equal(t, "build", v)

	v, err = r.Query("deploy.--force.value")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestQueryMissingPath(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	v, err := r.Query("nonexistent")
	require.NoError(t, err)
	assert.True(t, IsMissing(v))
	assert.False(t, r.Find("nonexistent"))
}

func TestQueryAmbiguousPath(t *testing.T) {
	t.Parallel()

	r := newTestResult()
	r.Options.Set("deploy", &OptionResult{Value: true, Args: Bindings{}})

	_, err := r.Query("deploy")
	require.Error(t, err)

	ae, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindAmbiguousPath, ae.Kind)
}

func TestFindReportsPresence(t *testing.T) {
	t.Parallel()

	r := newTestResult()
	assert.True(t, r.Find("name"))
	assert.True(t, r.Find("--verbose.value"))
}

func TestQueryTyped(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	v, ok := QueryTyped[string](r, "name")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	_, ok = QueryTyped[int](r, "name")
	assert.False(t, ok, "type mismatch should fail, not panic")
}

func TestIndexedTypedScansMainArgsThenOptionsThenSubs(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	v, ok := IndexedTyped[string](r, 0)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	v, ok = IndexedTyped[string](r, 1)
	assert.True(t, ok)
	assert.Equal(t, "build", v)
}

package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepAll(t *testing.T, st *argsState, av *argv, reserved map[string]bool) {
	t.Helper()

	for {
		claimed, err := st.step(av, reserved)
		require.Nil(t, err)

		if !claimed {
			return
		}
	}
}

func TestArgsStatePositional(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("foo", Int), NewArg("bar", Text))
	av := newArgv("2 hello")
	av.ingest("2 hello")

	st := newArgsState(args)
	stepAll(t, st, av, nil)

	bindings, err := st.finalize()
	require.Nil(t, err)
	assert.Equal(t, int64(2), bindings["foo"])
	assert.Equal(t, "hello", bindings["bar"])
	assert.True(t, av.eof())
}

func TestArgsStateRequiredMismatch(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("foo", Int), NewArg("bar", Text))
	av := newArgv("two hello")
	av.ingest("two hello")

	st := newArgsState(args)

	claimed, err := st.step(av, nil)
	assert.False(t, claimed)
	require.NotNil(t, err)
	assert.Equal(t, KindParamsUnmatched, err.Kind)
}

func TestArgsStateOptionalDefault(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("foo", Text).Optional().WithDefault("fallback"))
	av := newArgv("")
	av.ingest("")

	st := newArgsState(args)
	stepAll(t, st, av, nil)

	bindings, err := st.finalize()
	require.Nil(t, err)
	assert.Equal(t, "fallback", bindings["foo"])
}

func TestArgsStateRequiredMissing(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("foo", Text))
	av := newArgv("")
	av.ingest("")

	st := newArgsState(args)
	stepAll(t, st, av, nil)

	_, err := st.finalize()
	require.NotNil(t, err)
	assert.Equal(t, KindParamsMissing, err.Kind)
}

func TestArgsStateKeyword(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("name", Text).Keyed("name", "="))
	av := newArgv("name=alice")
	av.ingest("name=alice")

	st := newArgsState(args)
	stepAll(t, st, av, nil)

	bindings, err := st.finalize()
	require.Nil(t, err)
	assert.Equal(t, "alice", bindings["name"])
}

func TestArgsStateVariadic(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("nums", Int).Variadic(1, -1, true))
	av := newArgv("1 2 3 done")
	av.ingest("1 2 3 done")

	st := newArgsState(args)
	stepAll(t, st, av, nil)

	bindings, err := st.finalize()
	require.Nil(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, bindings["nums"])

	// "done" isn't an int, so the variadic run stops before it.
	assert.False(t, av.eof())
}

func TestNewArgsRejectsTwoVariadics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewArgs(
			NewArg("a", Text).Variadic(0, -1, true),
			NewArg("b", Text).Variadic(0, -1, true),
		)
	})
}

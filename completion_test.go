package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipArgsSpeculativelyAdvancesPastClaimedTokens(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("foo", Int), NewArg("bar", Text))

	av := newArgv("")
	av.ingest("2 hello rest")

	skipArgsSpeculatively(av, args)

	assert.Equal(t, "rest", av.next())
}

func TestSkipArgsSpeculativelyStopsOnMismatch(t *testing.T) {
	t.Parallel()

	args := NewArgs(NewArg("foo", Int))

	av := newArgv("")
	av.ingest("not-an-int rest")

	skipArgsSpeculatively(av, args)

	// step() commits the token to the slot it offers it to before finding
	// out whether the Pattern accepted it, so a required-slot mismatch
	// still consumes the token on its way to the fatal error that
	// skipArgsSpeculatively swallows.
	assert.Equal(t, "rest", av.next())
}

func TestCompSessionTabDoesNotPanicAtRootScope(t *testing.T) {
	t.Parallel()

	sub := NewSubcommand("install", NewOption("-u").WithAliases("--upgrade")).
		WithArgs(NewArgs(NewArg("pak_name", Text)))

	a := New("/pip", []any{sub, NewOption("list")})

	assert.NotPanics(t, func() {
		session := newCompSession(a, nil)
		_ = session.Tab()
	})
}

func TestCompSessionTabDescendsIntoMatchedSubcommand(t *testing.T) {
	t.Parallel()

	sub := NewSubcommand("install", NewOption("-u").WithAliases("--upgrade")).
		WithArgs(NewArgs(NewArg("pak_name", Text)))

	a := New("/pip", []any{sub, NewOption("list")})

	assert.NotPanics(t, func() {
		session := newCompSession(a, []any{"install", "numpy"})
		_ = session.Tab()
	})
}

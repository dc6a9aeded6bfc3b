package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExclusionAllowsSingle(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	b := Exclusion("--verbose", "--missing")
	assert.NoError(t, b.Apply(r))
}

func TestExclusionRejectsBothPresent(t *testing.T) {
	t.Parallel()

	r := newTestResult()
	r.Options.Set("--other", &OptionResult{Value: true, Args: Bindings{}})

	b := Exclusion("--verbose", "--other")
	err := b.Apply(r)
	require.Error(t, err)
}

func TestSetDefaultFillsMissingPath(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	b := SetDefault("region", "us-east-1")
	require.NoError(t, b.Apply(r))

	assert.Equal(t, "us-east-1", r.MainArgs["region"])
}

func TestSetDefaultLeavesPresentPathAlone(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	b := SetDefault("name", "bob")
	require.NoError(t, b.Apply(r))

	assert.Equal(t, "alice", r.MainArgs["name"])
}

func TestRunBehaviorsFlipsMatchedOnFailure(t *testing.T) {
	t.Parallel()

	r := newTestResult()
	r.Options.Set("--other", &OptionResult{Value: true, Args: Bindings{}})

	runBehaviors([]Behavior{Exclusion("--verbose", "--other")}, r)

	assert.False(t, r.Matched)
	require.NotNil(t, r.ErrorInfo)
	assert.Equal(t, KindBehaviorError, r.ErrorInfo.Kind)
}

func TestRunBehaviorsStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	calls := 0
	second := NewBehavior("second", func(*Arparma) error {
		calls++
		return nil
	})

	failing := NewBehavior("fails", func(*Arparma) error {
		return errorsNewBehavior("fails", "boom")
	})

	runBehaviors([]Behavior{failing, second}, r)

	assert.False(t, r.Matched)
	assert.Equal(t, 0, calls, "later behaviors must not run once one fails")
}

package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpDoesNotPanicOnMatchedResult(t *testing.T) {
	t.Parallel()

	r := newTestResult()

	var out string
	assert.NotPanics(t, func() { out = r.Dump() })
	assert.Contains(t, out, "alice")
}

func TestDumpDoesNotPanicOnUnmatchedResult(t *testing.T) {
	t.Parallel()

	r := newArparma(newArgv(""))
	r.Matched = false
	r.ErrorInfo = errHeaderMismatch()

	var out string
	assert.NotPanics(t, func() { out = r.Dump() })
	assert.NotEmpty(t, out)
}

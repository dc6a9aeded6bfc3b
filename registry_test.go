package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a := New("greet", nil)

	reg.Register(a)

	got, ok := reg.Lookup(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestRegistryLookupMissing(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	_, ok := reg.Lookup("nope")
	assert.False(t, ok)
}

func TestRegistryInvalidateBumpsGeneration(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a := New("greet", nil)
	reg.Register(a)

	before := reg.generationOf(a.ID())
	reg.Invalidate(a.ID())
	after := reg.generationOf(a.ID())

	assert.Equal(t, before+1, after)
}

func TestRegistryShortcutLifecycle(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a := New("greet", nil)
	reg.Register(a)

	reg.RegisterShortcut(a.ID(), Shortcut{Key: "hi", Template: "greet {*}"})

	store := reg.shortcutsFor(a.ID())
	av := newArgv("")
	av.ingest("hi there")

	_, _, ok := store.match(av)
	assert.True(t, ok)

	reg.ClearShortcuts(a.ID())
	store = reg.shortcutsFor(a.ID())

	av2 := newArgv("")
	av2.ingest("hi there")

	_, _, ok = store.match(av2)
	assert.False(t, ok)
}

func TestCanonicalKeyDeterministic(t *testing.T) {
	t.Parallel()

	k1 := canonicalKey("cmd", []any{"a", "b"})
	k2 := canonicalKey("cmd", []any{"a", "b"})
	k3 := canonicalKey("cmd", []any{"a", "c"})

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestRegistryCachePutGetRespectsGeneration(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a := New("greet", nil)
	reg.Register(a)

	tokens := []any{"world"}
	result := newArparma(newArgv(""))

	gen := reg.generationOf(a.ID())
	reg.cachePut(a.ID(), tokens, gen, result)

	got, ok := reg.cacheGet(a.ID(), tokens, gen)
	require.True(t, ok)
	assert.Same(t, result, got)

	reg.Invalidate(a.ID())

	// ParseWith always looks up with the *current* generation; after an
	// invalidation that no longer equals what the entry was cached under,
	// so the entry reads as stale even though it's still physically in
	// the LRU.
	_, ok = reg.cacheGet(a.ID(), tokens, reg.generationOf(a.ID()))
	assert.False(t, ok, "cache entry must be stale after Invalidate bumped the generation")
}

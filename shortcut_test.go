package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplateIndexPlaceholders(t *testing.T) {
	t.Parallel()

	remainder := []any{"hello", "world"}

	got := renderTemplate("say {0} and {1}", remainder, " ")
	assert.Equal(t, "say hello and world", got)
}

func TestRenderTemplateStarJoinsWithDefaultSep(t *testing.T) {
	t.Parallel()

	remainder := []any{"hello", "world"}

	got := renderTemplate("eval print('{*}')", remainder, " ")
	assert.Equal(t, "eval print('hello world')", got)
}

func TestRenderTemplateStarWithCustomSeparator(t *testing.T) {
	t.Parallel()

	remainder := []any{"a", "b", "c"}

	got := renderTemplate("join({*(,)})", remainder, " ")
	assert.Equal(t, "join(a,b,c)", got)
}

func TestRenderTemplateEscapedBraces(t *testing.T) {
	t.Parallel()

	got := renderTemplate(`literal \{0\} stays`, nil, " ")
	assert.Equal(t, "literal {0} stays", got)
}

func TestRenderTemplateOutOfRangeIndexIsEmpty(t *testing.T) {
	t.Parallel()

	got := renderTemplate("{5}", []any{"a"}, " ")
	assert.Equal(t, "", got)
}

func TestShortcutStoreExactMatch(t *testing.T) {
	t.Parallel()

	store := newShortcutStore()
	store.register(Shortcut{Key: "echo", Template: "eval print('{*}')"})

	av := newArgv("")
	av.ingest("echo hello world")

	sc, n, ok := store.match(av)
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	assert.Equal(t, "eval print('{*}')", sc.Template)
}

func TestShortcutStoreFuzzyPrefixMatch(t *testing.T) {
	t.Parallel()

	store := newShortcutStore()
	store.register(Shortcut{Key: "dep", Template: "deploy {*}", Fuzzy: true})

	av := newArgv("")
	av.ingest("deploy-now staging")

	_, _, ok := store.match(av)
	assert.True(t, ok)
}

func TestShortcutStoreNoMatch(t *testing.T) {
	t.Parallel()

	store := newShortcutStore()
	store.register(Shortcut{Key: "echo", Template: "x"})

	av := newArgv("")
	av.ingest("nope")

	_, _, ok := store.match(av)
	assert.False(t, ok)
}

func TestShortcutStoreClear(t *testing.T) {
	t.Parallel()

	store := newShortcutStore()
	store.register(Shortcut{Key: "echo", Template: "x"})
	store.clear()

	av := newArgv("")
	av.ingest("echo")

	_, _, ok := store.match(av)
	assert.False(t, ok)
}

func TestShortcutExpand(t *testing.T) {
	t.Parallel()

	sc := Shortcut{Key: "echo", Template: "eval print('{*}')"}

	tokens := sc.expand([]any{"hello", "world"}, " ")

	// The rendered template's single-quotes are stripped by tokenizeString's
	// shell-style quoting, same as any other ingested string.
	assert.Equal(t, []any{"eval", "print(hello world)"}, tokens)
}

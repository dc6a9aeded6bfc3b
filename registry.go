package alconna

import (
	"fmt"
	"hash/fnv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// cacheEntry is the LRU payload: a fully-built Arparma plus the
// generation counter of the command at the time it was cached, so that
// Register or Invalidate, by bumping that counter, makes it stale
// cheaply without having to walk the whole cache. Adding an Option or
// Subcommand to a command (Alconna.Option, Alconna.Subcommand) does not
// bump the counter.
type cacheEntry struct {
	result     *Arparma
	generation uint64
}

// Registry is the process-wide (or caller-scoped) collaborator holding
// all shared mutable state: a flat command map, an LRU parse cache, and
// the shortcut table, behind a single mutex — cache operations stay
// O(1) and concurrent command-tree access stays safe.
type Registry struct {
	mu sync.RWMutex

	commands map[string]*Alconna
	shortcut map[string]*shortcutStore
	cache    *lru.Cache[string, cacheEntry]
	gen      map[string]uint64
}

// defaultCacheSize bounds the process-wide parse cache.
const defaultCacheSize = 100

// NewRegistry builds an empty Registry with the default cache size.
func NewRegistry() *Registry {
	cache, _ := lru.New[string, cacheEntry](defaultCacheSize)

	return &Registry{
		commands: map[string]*Alconna{},
		shortcut: map[string]*shortcutStore{},
		cache:    cache,
		gen:      map[string]uint64{},
	}
}

// defaultRegistry is the process-wide Registry used when a caller
// doesn't construct its own.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide default Registry.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds a to the Registry's flat name->Alconna map, keyed by
// its ID (namespace + header name). Registering invalidates that
// command's cache entries.
func (r *Registry) Register(a *Alconna) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands[a.ID()] = a
	r.gen[a.ID()]++

	if _, ok := r.shortcut[a.ID()]; !ok {
		r.shortcut[a.ID()] = newShortcutStore()
	}
}

// Lookup finds a previously Register-ed command by ID.
func (r *Registry) Lookup(id string) (*Alconna, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.commands[id]

	return a, ok
}

// Invalidate bumps a command's generation counter, causing every cache
// entry keyed under its ID to be treated as stale on next lookup. Call
// this any time a command's grammar is mutated after registration
// (Alconna.Option, Alconna.Subcommand, etc.).
func (r *Registry) Invalidate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen[id]++
}

// RegisterShortcut adds sc to id's shortcut table.
func (r *Registry) RegisterShortcut(id string, sc Shortcut) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, ok := r.shortcut[id]
	if !ok {
		store = newShortcutStore()
		r.shortcut[id] = store
	}

	store.register(sc)
}

// ClearShortcuts empties id's shortcut table; an explicit clear() on
// the registry terminates their lifetime.
func (r *Registry) ClearShortcuts(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.shortcut[id]; ok {
		store.clear()
	}
}

func (r *Registry) shortcutsFor(id string) *shortcutStore {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if store, ok := r.shortcut[id]; ok {
		return store
	}

	return newShortcutStore()
}

// canonicalKey hashes the (command id, input) pair for the LRU cache:
// the token slice is serialized with msgpack before hashing so that two
// byte-different-but-semantically-equal inputs (e.g. a []byte token
// passed as a slice vs. an array) still collide to the same key.
func canonicalKey(id string, tokens []any) string {
	packed, err := msgpack.Marshal(tokens)
	if err != nil {
		// Fall back to the tokens' Go-syntax formatting: never fail a
		// parse over a caching concern, and never let two different
		// unencodable inputs share one key.
		packed = []byte(fmt.Sprintf("%#v", tokens))
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	_, _ = h.Write(packed)

	return id + "#" + fnvHex(h.Sum64())
}

func fnvHex(v uint64) string {
	const hexDigits = "0123456789abcdef"

	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}

	return string(buf)
}

// cacheGet returns a cached Arparma for (id, tokens) iff present and not
// stale relative to the command's current generation.
func (r *Registry) cacheGet(id string, tokens []any, generation uint64) (*Arparma, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.cache.Get(canonicalKey(id, tokens))
	if !ok || entry.generation != generation {
		return nil, false
	}

	return entry.result, true
}

func (r *Registry) cachePut(id string, tokens []any, generation uint64, result *Arparma) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Add(canonicalKey(id, tokens), cacheEntry{result: result, generation: generation})
}

func (r *Registry) generationOf(id string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.gen[id]
}

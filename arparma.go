package alconna

import (
	"strings"

	"github.com/iancoleman/orderedmap"
)

// OptionResult is the per-option sub-result: the Option's folded
// accumulated Value plus whatever Args it bound.
type OptionResult struct {
	Value any
	Args  Bindings
}

// SubcommandResult is the per-subcommand sub-result, recursive: it
// carries its own folded Value/Args plus maps of its own children's
// results, keyed by their dest_path relative to the subcommand.
type SubcommandResult struct {
	Value       any
	Args        Bindings
	Options     *orderedmap.OrderedMap // dest_path -> *OptionResult
	Subcommands *orderedmap.OrderedMap // dest_path -> *SubcommandResult
}

func newSubcommandResult() *SubcommandResult {
	return &SubcommandResult{
		Options:     orderedmap.New(),
		Subcommands: orderedmap.New(),
	}
}

// Arparma is the output tree of a parse. Insertion order into
// Options/Subcommands is preserved (via orderedmap) so that callers
// rendering these maps back to a user see input order, not Go's
// randomized map order.
type Arparma struct {
	HeadMatch *HeadResult

	Matched bool

	MainArgs Bindings

	Options     *orderedmap.OrderedMap // dest_path -> *OptionResult
	Subcommands *orderedmap.OrderedMap // dest_path -> *SubcommandResult

	OtherArgs Bindings

	ErrorInfo *Error

	// sourceInput is the Argv snapshot this Arparma was built from.
	sourceInput *argv
}

func newArparma(av *argv) *Arparma {
	return &Arparma{
		MainArgs:    Bindings{},
		Options:     orderedmap.New(),
		Subcommands: orderedmap.New(),
		OtherArgs:   Bindings{},
		sourceInput: av,
	}
}

// --------------------------------------------------------------------------------------------------- //
//                                            Query API                                                //
// --------------------------------------------------------------------------------------------------- //

// missing is the sentinel Query returns for an absent path: "Paths not
// present return a missing marker, never an error."
type missing struct{}

// Missing is the canonical "not present" marker returned by Query.
var Missing any = missing{}

// IsMissing reports whether v is the Query "not present" marker.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}

// Query resolves a dotted path into the result tree (e.g.
// "install.upgrade.value"). Ambiguous paths (the same first segment
// reachable as both an option and a subcommand) return ErrAmbiguousPath
// unless explicitly disambiguated with an "options." or "subcommands."
// prefix.
func (r *Arparma) Query(path string) (any, error) {
	if path == "" {
		return Missing, nil
	}

	segments := strings.Split(path, ".")

	if segments[0] == "options" {
		return r.queryOptions(segments[1:])
	}

	if segments[0] == "subcommands" {
		return r.querySubcommands(segments[1:])
	}

	_, inOpts := r.Options.Get(segments[0])
	_, inSubs := r.Subcommands.Get(segments[0])

	if inOpts && inSubs {
		return nil, errAmbiguousPath(path)
	}

	if inOpts {
		return r.queryOptions(segments)
	}

	if inSubs {
		return r.querySubcommands(segments)
	}

	if v, ok := r.MainArgs[segments[0]]; ok {
		return queryTail(v, segments[1:])
	}

	return Missing, nil
}

func (r *Arparma) queryOptions(segments []string) (any, error) {
	if len(segments) == 0 {
		return Missing, nil
	}

	raw, ok := r.Options.Get(segments[0])
	if !ok {
		return Missing, nil
	}

	opt := raw.(*OptionResult)

	if len(segments) == 1 {
		return opt.Value, nil
	}

	if segments[1] == "value" {
		return opt.Value, nil
	}

	if v, ok := opt.Args[segments[1]]; ok {
		return queryTail(v, segments[2:])
	}

	return Missing, nil
}

func (r *Arparma) querySubcommands(segments []string) (any, error) {
	if len(segments) == 0 {
		return Missing, nil
	}

	raw, ok := r.Subcommands.Get(segments[0])
	if !ok {
		return Missing, nil
	}

	sub := raw.(*SubcommandResult)
	rest := segments[1:]

	if len(rest) == 0 {
		return sub.Value, nil
	}

	switch rest[0] {
	case "value":
		return sub.Value, nil
	case "options":
		return queryInMap(sub.Options, rest[1:])
	case "subcommands":
		return queryInMapSub(sub, rest[1:])
	}

	if v, ok := sub.Args[rest[0]]; ok {
		return queryTail(v, rest[1:])
	}

	// Fall through to nested options/subcommands addressed without the
	// "options."/"subcommands." disambiguator.
	_, inOpts := sub.Options.Get(rest[0])
	_, inSubs := sub.Subcommands.Get(rest[0])

	if inOpts && inSubs {
		return nil, errAmbiguousPath(strings.Join(segments, "."))
	}

	if inOpts {
		return queryInMap(sub.Options, rest)
	}

	if inSubs {
		return queryInMapSub(sub, rest)
	}

	return Missing, nil
}

func queryInMap(m *orderedmap.OrderedMap, segments []string) (any, error) {
	if len(segments) == 0 {
		return Missing, nil
	}

	raw, ok := m.Get(segments[0])
	if !ok {
		return Missing, nil
	}

	opt := raw.(*OptionResult)
	if len(segments) == 1 || segments[1] == "value" {
		return opt.Value, nil
	}

	if v, ok := opt.Args[segments[1]]; ok {
		return queryTail(v, segments[2:])
	}

	return Missing, nil
}

func queryInMapSub(parent *SubcommandResult, segments []string) (any, error) {
	if len(segments) == 0 {
		return Missing, nil
	}

	raw, ok := parent.Subcommands.Get(segments[0])
	if !ok {
		return Missing, nil
	}

	sub := raw.(*SubcommandResult)

	if len(segments) == 1 {
		return sub.Value, nil
	}

	return Missing, nil
}

func queryTail(v any, segments []string) (any, error) {
	if len(segments) == 0 {
		return v, nil
	}
	// Scalar bound values have no further addressable structure.
	return Missing, nil
}

// Find reports whether path resolves to a present (non-missing) value.
func (r *Arparma) Find(path string) bool {
	v, err := r.Query(path)
	if err != nil {
		return false
	}

	return !IsMissing(v)
}

// QueryTyped resolves path and type-asserts the result to T, reporting
// ok=false on a missing path or a type mismatch.
func QueryTyped[T any](r *Arparma, path string) (T, bool) {
	var zero T

	v, err := r.Query(path)
	if err != nil || IsMissing(v) {
		return zero, false
	}

	t, ok := v.(T)

	return t, ok
}

// IndexedTyped returns the Nth (0-based) bound value of type T found
// anywhere in the result tree, scanning MainArgs then Options then
// Subcommands in that order — the Nth bound value of type T irrespective
// of path. Options and Subcommands are scanned in insertion order;
// MainArgs and each result's Args are plain Go maps, so the order among
// their values is not defined.
func IndexedTyped[T any](r *Arparma, n int) (T, bool) {
	var zero T

	found := 0

	for _, v := range r.MainArgs {
		if t, ok := v.(T); ok {
			if found == n {
				return t, true
			}

			found++
		}
	}

	for _, key := range r.Options.Keys() {
		raw, _ := r.Options.Get(key)
		opt := raw.(*OptionResult)

		if t, ok := opt.Value.(T); ok {
			if found == n {
				return t, true
			}

			found++
		}

		for _, v := range opt.Args {
			if t, ok := v.(T); ok {
				if found == n {
					return t, true
				}

				found++
			}
		}
	}

	for _, key := range r.Subcommands.Keys() {
		raw, _ := r.Subcommands.Get(key)
		sub := raw.(*SubcommandResult)

		if t, ok, rem := indexedInSubcommand(sub, n-found); ok {
			return t, true
		} else {
			found += rem
		}
	}

	return zero, false
}

func indexedInSubcommand[T any](sub *SubcommandResult, n int) (T, bool, int) {
	var zero T

	found := 0

	if t, ok := sub.Value.(T); ok {
		if found == n {
			return t, true, found
		}

		found++
	}

	for _, v := range sub.Args {
		if t, ok := v.(T); ok {
			if found == n {
				return t, true, found
			}

			found++
		}
	}

	for _, key := range sub.Options.Keys() {
		raw, _ := sub.Options.Get(key)
		opt := raw.(*OptionResult)

		if t, ok := opt.Value.(T); ok {
			if found == n {
				return t, true, found
			}

			found++
		}
	}

	return zero, false, found
}

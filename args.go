package alconna

import (
	"fmt"
	"strings"
)

// Args is an ordered sequence of Arg slots, enforcing:
//   - at most one unnamed variadic Arg
//   - at most one variadic-keyword Arg
//   - keyword Args may appear in any order relative to each other once
//     preceding positional Args are exhausted
type Args struct {
	slots []*Arg
}

// NewArgs builds an Args schema from the given slots, panicking at
// construction time if the invariants above are violated.
func NewArgs(slots ...*Arg) *Args {
	args := &Args{slots: slots}
	if err := args.validate(); err != nil {
		panic(err)
	}

	return args
}

func (args *Args) validate() error {
	variadicPositional := 0
	variadicKeyword := 0

	for _, s := range args.slots {
		if s.isVariadic() {
			if s.isKeyword() {
				variadicKeyword++
			} else {
				variadicPositional++
			}
		}
	}

	if variadicPositional > 1 {
		return fmt.Errorf("alconna: at most one unnamed variadic Arg is allowed")
	}

	if variadicKeyword > 1 {
		return fmt.Errorf("alconna: at most one variadic-keyword Arg is allowed")
	}

	return nil
}

// Slots returns the ordered list of Arg definitions.
func (args *Args) Slots() []*Arg {
	return args.slots
}

// Bindings is the name -> bound-value map produced by matching Args.
type Bindings map[string]any

// argsState is the incremental, per-scope walker over an Args schema:
// consume one token at a time and report back (bindings, completed) or
// a fatal error, driven by the Analyser's body-match dispatch loop so
// that node candidates always get first refusal on each token unless
// doing so would starve a required slot (see wouldStarveRequiredArgs).
type argsState struct {
	args        *Args
	positional  int
	keywordPool map[int]*Arg
	bindings    Bindings
}

func newArgsState(args *Args) *argsState {
	if args == nil {
		args = &Args{}
	}

	st := &argsState{args: args, bindings: Bindings{}, keywordPool: map[int]*Arg{}}

	for i, s := range args.slots {
		if s.isKeyword() {
			st.keywordPool[i] = s
		}
	}

	return st
}

// satisfied reports whether every slot has either been bound or been
// skipped past; once true, step can no longer claim any token.
func (st *argsState) satisfied() bool {
	return st.positional >= len(st.args.slots) && len(st.keywordPool) == 0
}

// requiredRemaining counts the not-yet-bound slots that still demand a
// token no matter what: required positional slots, a required variadic
// slot with a nonzero minimum, and required keyword slots still in the
// pool. The dispatcher's node-vs-Args tie-break uses this to tell
// whether letting a node claim the current token would strand one of
// these with nothing left to bind.
func (st *argsState) requiredRemaining() int {
	n := 0

	for i := st.positional; i < len(st.args.slots); i++ {
		s := st.args.slots[i]
		if s.isKeyword() || s.isOptional() {
			continue
		}

		if s.isVariadic() && s.Multi.Min == 0 {
			continue
		}

		n++
	}

	for _, s := range st.keywordPool {
		if !s.isOptional() {
			n++
		}
	}

	return n
}

// step attempts to claim the token currently at av's cursor, internally
// skipping slots that require no token (keyword slots still pending, a
// mismatched-but-optional positional slot) until it either consumes a
// token, hits a fatal required-slot failure, or determines nothing more
// can be claimed. reserved names (help, etc.) are left for the node
// level when the current positional slot is optional.
func (st *argsState) step(av *argv, reserved map[string]bool) (claimed bool, fatal *Error) {
	for {
		if st.satisfied() || av.eof() {
			return false, nil
		}

		tok, isStr := av.peekString()

		if isStr {
			if idx, remainder, ok := matchKeyword(tok, st.keywordPool); ok {
				av.next()

				slot := st.args.slots[idx]

				val, err := slot.effectivePattern().Accept(remainder)
				if err != nil {
					return false, errInvalidParam(slot.Name, err.Error())
				}

				st.bindings[slot.Name] = val
				delete(st.keywordPool, idx)

				return true, nil
			}

			if st.positional < len(st.args.slots) {
				cur := st.args.slots[st.positional]
				if cur.isOptional() && reserved[tok] {
					return false, nil
				}
			}
		}

		if st.positional >= len(st.args.slots) {
			return false, nil
		}

		cur := st.args.slots[st.positional]

		if cur.isKeyword() {
			st.positional++

			continue
		}

		if cur.isVariadic() {
			consumed, err := consumeVariadic(av, cur)
			if err != nil {
				return false, err
			}

			st.bindings[cur.Name] = consumed
			st.positional++

			if len(consumed) == 0 {
				continue
			}

			return true, nil
		}

		entry := av.mark()

		val, err := cur.effectivePattern().Accept(tokenOrNext(av, isStr, tok))
		if err != nil {
			if cur.isOptional() {
				av.rewind(entry)

				if def, ok := cur.defaultValue(); ok {
					st.bindings[cur.Name] = def
				}

				st.positional++

				continue
			}

			return false, errParamsUnmatched(tok, cur.Pattern.String())
		}

		st.bindings[cur.Name] = val
		st.positional++

		return true, nil
	}
}

// finalize fills defaults for skipped-but-optional slots and reports an
// error for any required slot that never got a value.
func (st *argsState) finalize() (Bindings, *Error) {
	for ; st.positional < len(st.args.slots); st.positional++ {
		cur := st.args.slots[st.positional]
		if cur.isKeyword() {
			continue
		}

		if cur.isOptional() || (cur.isVariadic() && cur.Multi.Min == 0) {
			if def, ok := cur.defaultValue(); ok {
				st.bindings[cur.Name] = def
			}

			continue
		}

		return nil, errParamsMissing(cur.Name)
	}

	for _, slot := range st.keywordPool {
		if slot.isOptional() {
			if def, ok := slot.defaultValue(); ok {
				st.bindings[slot.Name] = def
			}

			continue
		}

		return nil, errArgumentMissing(slot.KeyedBy.Key)
	}

	return st.bindings, nil
}

// tokenOrNext consumes and returns the next raw token from av,
// preferring the already-peeked string tok when isStr is true (so the
// caller doesn't need to re-peek).
func tokenOrNext(av *argv, isStr bool, tok string) any {
	if isStr {
		av.next()
		return tok
	}

	return av.next()
}

func matchKeyword(tok string, pool map[int]*Arg) (int, string, bool) {
	for idx, slot := range pool {
		key := slot.KeyedBy.Key
		sep := slot.KeyedBy.sep()

		prefix := key + sep
		if len(tok) > len(prefix) && tok[:len(prefix)] == prefix {
			return idx, tok[len(prefix):], true
		}
	}

	return 0, "", false
}

// consumeVariadic greedily (or lazily) consumes tokens while slot's
// Pattern accepts them and the Multiplicity bounds allow. A slot with
// its own Separator consumes a single token and splits it on that
// separator instead, overriding the enclosing scope's whitespace
// tokenization for just this slot.
func consumeVariadic(av *argv, slot *Arg) ([]any, error) {
	if slot.Separator != "" {
		return consumeVariadicSeparated(av, slot)
	}

	var out []any

	max := slot.Multi.Max
	if max < 0 {
		max = 1<<31 - 1
	}

	for len(out) < max {
		if av.eof() {
			break
		}

		mark := av.mark()
		tok := av.next()

		val, err := slot.effectivePattern().Accept(tok)
		if err != nil {
			av.rewind(mark)
			break
		}

		out = append(out, val)

		if !slot.Multi.Greedy && len(out) >= slot.Multi.Min {
			break
		}
	}

	if len(out) < slot.Multi.Min {
		return nil, errParamsMissing(slot.Name)
	}

	return out, nil
}

// consumeVariadicSeparated implements the Separator-overridden form of
// consumeVariadic: it takes exactly one raw token and splits it on
// slot.Separator, validating each part against slot's Pattern.
func consumeVariadicSeparated(av *argv, slot *Arg) ([]any, error) {
	if av.eof() {
		if slot.Multi.Min > 0 {
			return nil, errParamsMissing(slot.Name)
		}

		return nil, nil
	}

	mark := av.mark()
	tok := av.next()

	s, isStr := tok.(string)
	if !isStr {
		av.rewind(mark)

		if slot.Multi.Min > 0 {
			return nil, errParamsMissing(slot.Name)
		}

		return nil, nil
	}

	parts := strings.Split(s, slot.Separator)

	if slot.Multi.Max >= 0 && len(parts) > slot.Multi.Max {
		parts = parts[:slot.Multi.Max]
	}

	out := make([]any, 0, len(parts))

	for _, p := range parts {
		val, err := slot.effectivePattern().Accept(p)
		if err != nil {
			av.rewind(mark)

			if slot.Multi.Min > 0 {
				return nil, errParamsMissing(slot.Name)
			}

			return nil, nil
		}

		out = append(out, val)
	}

	if len(out) < slot.Multi.Min {
		av.rewind(mark)

		return nil, errParamsMissing(slot.Name)
	}

	return out, nil
}

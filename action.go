package alconna

// ActionKind enumerates the built-in Action reducers, plus ActionUser
// for the escape hatch to a caller-supplied reducer.
type ActionKind uint8

const (
	// ActionStore keeps the last matched value (last-write-wins).
	ActionStore ActionKind = iota
	// ActionAppend accumulates every matched value, in input order.
	ActionAppend
	// ActionCount accumulates an integer count of matches.
	ActionCount
	// ActionStoreTrue fixes the value to true regardless of repetition.
	ActionStoreTrue
	// ActionStoreFalse fixes the value to false regardless of repetition.
	ActionStoreFalse
	// ActionStoreValue fixes the value to a constant from the schema.
	ActionStoreValue
	// ActionUser delegates folding to Reduce.
	ActionUser
)

// Action determines how repeated matches of an Option/Subcommand fold
// into the accumulated value. Arg slots carry no Action.
type Action struct {
	Kind ActionKind

	// Value is used by ActionStoreValue: the fixed constant to store.
	Value any

	// Reduce is used by ActionUser: it is called with (previous
	// accumulated value or nil, newly matched value) and returns the
	// next accumulated value.
	Reduce func(prev, next any) any
}

// Store builds the default last-write-wins Action.
func Store() Action { return Action{Kind: ActionStore} }

// Append builds an Action that accumulates every match into a list.
func Append() Action { return Action{Kind: ActionAppend} }

// Count builds an Action that accumulates an integer count of matches.
func Count() Action { return Action{Kind: ActionCount} }

// StoreTrue builds an Action fixing the value to true.
func StoreTrue() Action { return Action{Kind: ActionStoreTrue} }

// StoreFalse builds an Action fixing the value to false.
func StoreFalse() Action { return Action{Kind: ActionStoreFalse} }

// StoreValue builds an Action fixing the value to the given constant.
func StoreValue(v any) Action { return Action{Kind: ActionStoreValue, Value: v} }

// Reducer builds a user-supplied Action.
func Reducer(fn func(prev, next any) any) Action { return Action{Kind: ActionUser, Reduce: fn} }

// fold applies a to accumulate next onto prev: append yields exactly
// the matched values in input order, count yields the integer count,
// store yields the last match.
func (a Action) fold(prev any, next any, matched bool) any {
	switch a.Kind {
	case ActionAppend:
		list, _ := prev.([]any)
		return append(list, next)
	case ActionCount:
		n, _ := prev.(int)
		return n + 1
	case ActionStoreTrue:
		return true
	case ActionStoreFalse:
		return false
	case ActionStoreValue:
		return a.Value
	case ActionUser:
		if a.Reduce != nil {
			return a.Reduce(prev, next)
		}

		return next
	default: // ActionStore
		return next
	}
}

// zero returns the accumulator's identity/zero value for an Action
// never matched at all, used to populate defaults for count (0) and
// store_true/store_false's complement.
func (a Action) zero() any {
	switch a.Kind {
	case ActionCount:
		return 0
	case ActionAppend:
		return []any(nil)
	case ActionStoreTrue:
		return false
	case ActionStoreFalse:
		return true
	default:
		return nil
	}
}

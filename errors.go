package alconna

import (
	"errors"
	"fmt"
)

// Kind discriminates the error taxonomy: exactly one Kind value
// terminates (or soft-terminates) a given parse.
type Kind uint

// ORDER IN WHICH THE ERROR CONSTANTS APPEAR MATTERS for (Kind).String.
const (
	// KindUnknown indicates a generic, unclassified failure.
	KindUnknown Kind = iota

	// KindHeaderMismatch indicates that no prefix/name pair matched.
	KindHeaderMismatch

	// KindFuzzySuggestion is a soft failure carrying a near-miss hint for
	// the command name, produced when fuzzy_match is enabled.
	KindFuzzySuggestion

	// KindParamsUnmatched indicates a token did not fit the pattern of
	// the slot it was offered to.
	KindParamsUnmatched

	// KindParamsMissing indicates a required Arg slot ran out of input.
	KindParamsMissing

	// KindArgumentMissing indicates a keyword Arg was present by key but
	// missing its value, or its key never appeared.
	KindArgumentMissing

	// KindInvalidParam indicates a Pattern validator refused an
	// otherwise-accepted value.
	KindInvalidParam

	// KindAmbiguousPath is raised at query time, not parse time: a dotted
	// path resolves to more than one destination.
	KindAmbiguousPath

	// KindBehaviorError is raised by a post-parse Behavior that flips a
	// previously-matched Arparma to unmatched.
	KindBehaviorError

	// KindBuiltinAction carries the output of a built-in --help/--shortcut/
	// --comp invocation; it terminates the parse cleanly with Matched=true.
	KindBuiltinAction
)

func (k Kind) String() string {
	names := [...]string{
		"unknown",
		"header mismatch",
		"fuzzy suggestion",
		"params unmatched",
		"params missing",
		"argument missing",
		"invalid param",
		"ambiguous path",
		"behavior error",
		"builtin action",
	}
	if int(k) >= len(names) {
		return "unrecognized error kind"
	}

	return names[k]
}

// Error is the single discriminated error type returned by a parse:
// every Kind in the taxonomy above is carried by this one type, with
// typed payload fields rather than a pre-formatted message, so callers
// can switch on Kind without string-parsing — the core emits keys plus
// positional placeholders, never formatted strings.
type Error struct {
	Kind Kind

	// MessageKey is a stable i18n lookup key; Args are its positional
	// placeholders. Formatting a human string from these is the
	// caller/formatter's job, not the core's.
	MessageKey string
	Args       []any

	// Candidate is set for KindFuzzySuggestion: the nearest known
	// command name.
	Candidate string

	// Token and Expected are set for KindParamsUnmatched.
	Token    any
	Expected string

	// SlotName is set for KindParamsMissing, KindInvalidParam and
	// KindArgumentMissing.
	SlotName string

	// Reason is set for KindInvalidParam (the validator's refusal
	// reason) and KindBehaviorError (the behavior's reason).
	Reason string

	// Path is set for KindAmbiguousPath.
	Path string

	// BehaviorName is set for KindBehaviorError.
	BehaviorName string

	// Payload carries the decoded output of a built-in action
	// (KindBuiltinAction): help text, shortcut-registration result, or a
	// completion session, depending on which builtin ran.
	Payload any

	// cause, when non-nil, lets this Error participate in errors.Is/As
	// chains for a wrapped lower-level failure (e.g. a Pattern's own
	// conversion error).
	cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch e.Kind {
	case KindFuzzySuggestion:
		return fmt.Sprintf("%s: did you mean %q?", e.Kind, e.Candidate)
	case KindParamsUnmatched:
		return fmt.Sprintf("%s: %v does not match %s", e.Kind, e.Token, e.Expected)
	case KindParamsMissing, KindArgumentMissing:
		return fmt.Sprintf("%s: %s", e.Kind, e.SlotName)
	case KindInvalidParam:
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.SlotName, e.Reason)
	case KindAmbiguousPath:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	case KindBehaviorError:
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.BehaviorName, e.Reason)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

func newError(kind Kind) *Error {
	return &Error{Kind: kind}
}

func errHeaderMismatch() *Error {
	return &Error{Kind: KindHeaderMismatch, MessageKey: "alconna.header_mismatch"}
}

func errFuzzySuggestion(candidate string) *Error {
	return &Error{Kind: KindFuzzySuggestion, MessageKey: "alconna.fuzzy_suggestion", Candidate: candidate}
}

func errParamsUnmatched(token any, expected string) *Error {
	return &Error{
		Kind:       KindParamsUnmatched,
		MessageKey: "alconna.params_unmatched",
		Token:      token,
		Expected:   expected,
	}
}

func errParamsMissing(slot string) *Error {
	return &Error{Kind: KindParamsMissing, MessageKey: "alconna.params_missing", SlotName: slot}
}

func errArgumentMissing(key string) *Error {
	return &Error{Kind: KindArgumentMissing, MessageKey: "alconna.argument_missing", SlotName: key}
}

func errInvalidParam(slot, reason string) *Error {
	return &Error{Kind: KindInvalidParam, MessageKey: "alconna.invalid_param", SlotName: slot, Reason: reason}
}

// ErrAmbiguousPath is returned by query-time lookups; kept as a sentinel
// alongside the typed *Error so callers may also match with errors.Is
// against a bare kind check.
var ErrAmbiguousPath = errors.New("alconna: ambiguous path")

func errAmbiguousPath(path string) *Error {
	return &Error{Kind: KindAmbiguousPath, MessageKey: "alconna.ambiguous_path", Path: path, cause: ErrAmbiguousPath}
}

func errBehavior(name, reason string) *Error {
	return &Error{Kind: KindBehaviorError, MessageKey: "alconna.behavior_error", BehaviorName: name, Reason: reason}
}

func errBuiltin(payload any) *Error {
	return &Error{Kind: KindBuiltinAction, MessageKey: "alconna.builtin_action", Payload: payload}
}

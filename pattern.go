package alconna

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	validatorpkg "github.com/go-playground/validator/v10"
)

// --------------------------------------------------------------------------------------------------- //
//                                             Public                                                  //
// --------------------------------------------------------------------------------------------------- //
//
// Pattern is the typed value predicate + converter: "does this token
// denote a T, and if so what T?" Patterns are immutable once built;
// Accept is a pure function of (token, pattern).

// Mismatch is the sentinel returned by Pattern.Accept when a token is
// rejected. It is never wrapped further: the Args/Node matchers decide
// what ParamsUnmatched/InvalidParam payload to build around it.
type Mismatch struct {
	// Reason is a short, stable, human-unfriendly tag such as
	// "not-a-string" or "invalid value" (rule 4): formatting belongs to
	// the caller, not the Pattern.
	Reason string
}

func (m *Mismatch) Error() string { return m.Reason }

// Pattern matches and converts a single token.
type Pattern interface {
	// Accept reports whether token denotes a value of this Pattern's
	// OriginType, returning the converted value on success.
	Accept(token any) (value any, err error)

	// OriginType is used for reflection and error reporting (rule 1):
	// non-string opaque tokens are only accepted by Patterns whose
	// OriginType matches by equality or subtyping.
	OriginType() reflect.Type

	// String names the pattern for help/diagnostic text.
	String() string
}

// Validator is a post-acceptance predicate (rule 4): a failing validator
// converts an Ok into a Mismatch carrying an "invalid value" reason.
type Validator func(value any) error

// --------------------------------------------------------------------------------------------------- //
//                                         Built-in patterns                                           //
// --------------------------------------------------------------------------------------------------- //

// AnyPattern accepts any token, string or opaque, unconverted.
type AnyPattern struct{}

func (AnyPattern) Accept(token any) (any, error) { return token, nil }
func (AnyPattern) OriginType() reflect.Type      { return reflect.TypeOf((*any)(nil)).Elem() }
func (AnyPattern) String() string                { return "any" }

// Any is the shared AnyPattern instance (patterns are immutable, so one
// value can be reused everywhere a wildcard is needed).
var Any Pattern = AnyPattern{}

// TextPattern accepts only string tokens, unconverted.
type TextPattern struct{}

func (TextPattern) Accept(token any) (any, error) {
	s, ok := token.(string)
	if !ok {
		return nil, &Mismatch{Reason: "not-a-string"}
	}

	return s, nil
}
func (TextPattern) OriginType() reflect.Type { return reflect.TypeOf("") }
func (TextPattern) String() string           { return "str" }

// Text is the shared TextPattern instance.
var Text Pattern = TextPattern{}

// ValuePattern accepts a token iff it is string-equal to one of Values.
type ValuePattern struct {
	Values []string
}

// Value builds a Pattern that only accepts exact string matches against
// one of the given literals (e.g. an enum-like flag argument).
func Value(values ...string) Pattern { return ValuePattern{Values: values} }

func (v ValuePattern) Accept(token any) (any, error) {
	s, ok := token.(string)
	if !ok {
		return nil, &Mismatch{Reason: "not-a-string"}
	}

	for _, want := range v.Values {
		if s == want {
			return s, nil
		}
	}

	return nil, &Mismatch{Reason: "not-one-of " + strings.Join(v.Values, "|")}
}
func (v ValuePattern) OriginType() reflect.Type { return reflect.TypeOf("") }
func (v ValuePattern) String() string           { return strings.Join(v.Values, "|") }

// IntPattern parses a string token (or accepts an int/int64 opaque
// token) as an int64.
type IntPattern struct{}

func (IntPattern) Accept(token any) (any, error) {
	switch t := token.(type) {
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return nil, &Mismatch{Reason: "not-an-int"}
		}

		return n, nil
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	default:
		return nil, &Mismatch{Reason: "not-an-int"}
	}
}
func (IntPattern) OriginType() reflect.Type { return reflect.TypeOf(int64(0)) }
func (IntPattern) String() string           { return "int" }

// Int is the shared IntPattern instance.
var Int Pattern = IntPattern{}

// FloatPattern parses a string token (or accepts a float32/float64
// opaque token) as a float64.
type FloatPattern struct{}

func (FloatPattern) Accept(token any) (any, error) {
	switch t := token.(type) {
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, &Mismatch{Reason: "not-a-float"}
		}

		return f, nil
	case float32:
		return float64(t), nil
	case float64:
		return t, nil
	default:
		return nil, &Mismatch{Reason: "not-a-float"}
	}
}
func (FloatPattern) OriginType() reflect.Type { return reflect.TypeOf(float64(0)) }
func (FloatPattern) String() string           { return "float" }

// Float is the shared FloatPattern instance.
var Float Pattern = FloatPattern{}

// BoolPattern parses "true"/"false" (and common shorthands) as bool.
type BoolPattern struct{}

func (BoolPattern) Accept(token any) (any, error) {
	switch t := token.(type) {
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return nil, &Mismatch{Reason: "not-a-bool"}
		}

		return b, nil
	case bool:
		return t, nil
	default:
		return nil, &Mismatch{Reason: "not-a-bool"}
	}
}
func (BoolPattern) OriginType() reflect.Type { return reflect.TypeOf(false) }
func (BoolPattern) String() string           { return "bool" }

// Bool is the shared BoolPattern instance.
var Bool Pattern = BoolPattern{}

// BytesPattern accepts a []byte opaque token directly, or a string token
// which it encodes as UTF-8 bytes (rule 1: "numeric, path, bytes by
// utf-8, etc.").
type BytesPattern struct{}

func (BytesPattern) Accept(token any) (any, error) {
	switch t := token.(type) {
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	default:
		return nil, &Mismatch{Reason: "not-bytes"}
	}
}
func (BytesPattern) OriginType() reflect.Type { return reflect.TypeOf([]byte(nil)) }
func (BytesPattern) String() string           { return "bytes" }

// Bytes is the shared BytesPattern instance.
var Bytes Pattern = BytesPattern{}

// ObjectPattern accepts only opaque (non-string) tokens assignable to
// Target's type (rule 1: "only patterns whose origin type matches ...
// accept [non-string tokens]; all string-only patterns reject non-string
// tokens").
type ObjectPattern struct {
	Target reflect.Type
}

// Object builds a Pattern that accepts any opaque token assignable to
// the type of sample (sample is only used to capture its reflect.Type).
func Object(sample any) Pattern {
	return ObjectPattern{Target: reflect.TypeOf(sample)}
}

func (o ObjectPattern) Accept(token any) (any, error) {
	if token == nil {
		return nil, &Mismatch{Reason: "nil token"}
	}

	tt := reflect.TypeOf(token)
	if tt == o.Target || (o.Target != nil && tt.AssignableTo(o.Target)) {
		return token, nil
	}

	return nil, &Mismatch{Reason: "wrong type: " + tt.String()}
}
func (o ObjectPattern) OriginType() reflect.Type { return o.Target }
func (o ObjectPattern) String() string {
	if o.Target == nil {
		return "object"
	}

	return o.Target.String()
}

// AntiPattern inverts its wrapped Pattern's result (rule 2): Ok becomes
// Mismatch, Mismatch becomes Ok with the raw token passed through
// unconverted.
type AntiPattern struct {
	Inner Pattern
}

// Anti builds the negation of inner.
func Anti(inner Pattern) Pattern { return AntiPattern{Inner: inner} }

func (a AntiPattern) Accept(token any) (any, error) {
	if _, err := a.Inner.Accept(token); err == nil {
		return nil, &Mismatch{Reason: "anti: inner pattern accepted"}
	}

	return token, nil
}
func (a AntiPattern) OriginType() reflect.Type { return a.Inner.OriginType() }
func (a AntiPattern) String() string           { return "!" + a.Inner.String() }

// UnionPattern tries each alternative left-to-right; the first Ok wins
// (rule 3).
type UnionPattern struct {
	Alternatives []Pattern
}

// Union builds a first-match-wins Pattern over alternatives.
func Union(alternatives ...Pattern) Pattern {
	return UnionPattern{Alternatives: alternatives}
}

func (u UnionPattern) Accept(token any) (any, error) {
	for _, alt := range u.Alternatives {
		if v, err := alt.Accept(token); err == nil {
			return v, nil
		}
	}

	return nil, &Mismatch{Reason: "no alternative matched"}
}
func (u UnionPattern) OriginType() reflect.Type {
	return reflect.TypeOf((*any)(nil)).Elem()
}
func (u UnionPattern) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, a := range u.Alternatives {
		parts[i] = a.String()
	}

	return strings.Join(parts, "|")
}

// SequencePattern recursively applies Inner to each element of a []any
// (or string-token split on sep) token: a sequence/mapping pattern that
// recursively applies an inner pattern to each element token.
type SequencePattern struct {
	Inner Pattern
	Sep   string // used only when the token is a single string to split
}

// Sequence builds a Pattern matching a slice where every element
// satisfies inner.
func Sequence(inner Pattern, sep string) Pattern {
	if sep == "" {
		sep = ","
	}

	return SequencePattern{Inner: inner, Sep: sep}
}

func (s SequencePattern) Accept(token any) (any, error) {
	var elems []any

	switch t := token.(type) {
	case []any:
		elems = t
	case string:
		for _, part := range strings.Split(t, s.Sep) {
			elems = append(elems, part)
		}
	default:
		return nil, &Mismatch{Reason: "not-a-sequence"}
	}

	out := make([]any, 0, len(elems))

	for _, e := range elems {
		v, err := s.Inner.Accept(e)
		if err != nil {
			return nil, &Mismatch{Reason: "element: " + err.Error()}
		}

		out = append(out, v)
	}

	return out, nil
}
func (s SequencePattern) OriginType() reflect.Type {
	return reflect.TypeOf([]any(nil))
}
func (s SequencePattern) String() string { return "[" + s.Inner.String() + ", ...]" }

// MappingPattern recursively applies KeyPattern/ValuePattern to the
// entries of a map[string]any token.
type MappingPattern struct {
	Key   Pattern
	Value Pattern
}

// Mapping builds a Pattern matching map[string]any where every key and
// value satisfies key/value respectively.
func Mapping(key, value Pattern) Pattern {
	return MappingPattern{Key: key, Value: value}
}

func (m MappingPattern) Accept(token any) (any, error) {
	raw, ok := token.(map[string]any)
	if !ok {
		return nil, &Mismatch{Reason: "not-a-mapping"}
	}

	out := make(map[string]any, len(raw))

	for k, v := range raw {
		key, err := m.Key.Accept(k)
		if err != nil {
			return nil, &Mismatch{Reason: "key: " + err.Error()}
		}

		val, err := m.Value.Accept(v)
		if err != nil {
			return nil, &Mismatch{Reason: "value: " + err.Error()}
		}

		out[fmt.Sprint(key)] = val
	}

	return out, nil
}
func (m MappingPattern) OriginType() reflect.Type {
	return reflect.TypeOf(map[string]any(nil))
}
func (m MappingPattern) String() string {
	return "{" + m.Key.String() + ": " + m.Value.String() + "}"
}

// --------------------------------------------------------------------------------------------------- //
//                                    Validated pattern wrapper                                         //
// --------------------------------------------------------------------------------------------------- //

// validated wraps a Pattern with a chain of Validators, applied after
// acceptance (rule 4). It is built by Arg.WithValidators, never
// constructed directly by callers.
type validated struct {
	Pattern
	chain []Validator
}

func (v *validated) Accept(token any) (any, error) {
	val, err := v.Pattern.Accept(token)
	if err != nil {
		return nil, err
	}

	for _, fn := range v.chain {
		if verr := fn(val); verr != nil {
			return nil, &Mismatch{Reason: "invalid value: " + verr.Error()}
		}
	}

	return val, nil
}

// WithValidators returns a Pattern identical to p but additionally
// running validators, in order, after acceptance.
func WithValidators(p Pattern, validators ...Validator) Pattern {
	if len(validators) == 0 {
		return p
	}

	if v, ok := p.(*validated); ok {
		chain := append(append([]Validator{}, v.chain...), validators...)
		return &validated{Pattern: v.Pattern, chain: chain}
	}

	return &validated{Pattern: p, chain: validators}
}

// --------------------------------------------------------------------------------------------------- //
//                          go-playground/validator struct validation                                  //
// --------------------------------------------------------------------------------------------------- //

var structValidate = validatorpkg.New()

// StructValidator builds a Validator that runs go-playground/validator's
// struct-tag validation (`validate:"..."`) against an accepted value.
// Useful when a Pattern's target type is a struct whose fields carry
// `validate` tags.
func StructValidator() Validator {
	return func(value any) error {
		if value == nil {
			return nil
		}

		rv := reflect.ValueOf(value)
		for rv.Kind() == reflect.Ptr {
			if rv.IsNil() {
				return nil
			}

			rv = rv.Elem()
		}

		if rv.Kind() != reflect.Struct {
			return nil
		}

		return structValidate.Struct(rv.Interface())
	}
}

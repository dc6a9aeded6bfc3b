package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPatterns(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name    string
		pattern Pattern
		token   any
		want    any
		wantErr bool
	}{
		{"text ok", Text, "hello", "hello", false},
		{"text rejects opaque", Text, 42, nil, true},
		{"int from string", Int, "42", int64(42), false},
		{"int from opaque", Int, 7, int64(7), false},
		{"int rejects garbage", Int, "nope", nil, true},
		{"float from string", Float, "3.5", 3.5, false},
		{"bool from string", Bool, "true", true, false},
		{"bool rejects garbage", Bool, "maybe", nil, true},
		{"bytes from opaque", Bytes, []byte("hi"), []byte("hi"), false},
		{"bytes from string", Bytes, "hi", []byte("hi"), false},
		{"value accepts member", Value("a", "b"), "b", "b", false},
		{"value rejects non-member", Value("a", "b"), "c", nil, true},
		{"any accepts anything", Any, 123, 123, false},
	}

	for _, tc := range tt {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.pattern.Accept(tc.token)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAntiPattern(t *testing.T) {
	t.Parallel()

	anti := Anti(Int)

	v, err := anti.Accept("not-an-int")
	require.NoError(t, err)
	assert.Equal(t, "not-an-int", v)

	_, err = anti.Accept("42")
	require.Error(t, err)
}

func TestUnionPattern(t *testing.T) {
	t.Parallel()

	u := Union(Int, Text)

	v, err := u.Accept("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = u.Accept("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestObjectPattern(t *testing.T) {
	t.Parallel()

	type myPath string

	p := Object(myPath(""))

	v, err := p.Accept(myPath("x.py"))
	require.NoError(t, err)
	assert.Equal(t, myPath("x.py"), v)

	_, err = p.Accept("x.py")
	require.Error(t, err)
}

func TestSequencePattern(t *testing.T) {
	t.Parallel()

	seq := Sequence(Int, ",")

	v, err := seq.Accept("1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, v)
}

func TestWithValidators(t *testing.T) {
	t.Parallel()

	positive := func(v any) error {
		if n, ok := v.(int64); ok && n > 0 {
			return nil
		}

		return &Mismatch{Reason: "must be positive"}
	}

	p := WithValidators(Int, positive)

	_, err := p.Accept("5")
	require.NoError(t, err)

	_, err = p.Accept("-5")
	require.Error(t, err)
}

package alconna

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionFoldStore(t *testing.T) {
	t.Parallel()

	a := Store()
	assert.Equal(t, "b", a.fold("a", "b", true))
}

func TestActionFoldAppend(t *testing.T) {
	t.Parallel()

	a := Append()

	var acc any
	acc = a.fold(acc, "x", true)
	acc = a.fold(acc, "y", true)
	acc = a.fold(acc, "z", true)

	assert.Equal(t, []any{"x", "y", "z"}, acc)
}

func TestActionFoldCount(t *testing.T) {
	t.Parallel()

	a := Count()

	var acc any
	acc = a.fold(acc, nil, true)
	acc = a.fold(acc, nil, true)
	acc = a.fold(acc, nil, true)
	acc = a.fold(acc, nil, true)

	assert.Equal(t, 4, acc)
}

func TestActionFoldStoreTrueFalse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, true, StoreTrue().fold(nil, nil, true))
	assert.Equal(t, false, StoreFalse().fold(nil, nil, true))
}

func TestActionFoldStoreValue(t *testing.T) {
	t.Parallel()

	a := StoreValue(42)
	assert.Equal(t, 42, a.fold(nil, "ignored", true))
}

func TestActionFoldUserReducer(t *testing.T) {
	t.Parallel()

	a := Reducer(func(prev, next any) any {
		p, _ := prev.(int)
		n, _ := next.(int)

		return p + n
	})

	var acc any
	acc = a.fold(acc, 1, true)
	acc = a.fold(acc, 2, true)
	acc = a.fold(acc, 3, true)

	assert.Equal(t, 6, acc)
}

func TestActionZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Count().zero())
	assert.Equal(t, []any(nil), Append().zero())
	assert.Equal(t, false, StoreTrue().zero())
	assert.Equal(t, true, StoreFalse().zero())
	assert.Nil(t, Store().zero())
}

package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	type fruit string

	apple := New(fruit("apple"))
	require.Equal(t, fruit("apple"), apple)

	v, err := ToEnum[fruit]("apple")
	require.NoError(t, err)
	require.Equal(t, apple, v)

	_, err = ToEnum[fruit]("pear")
	require.Error(t, err)
}

func TestValues(t *testing.T) {
	type rank string

	low := New(rank("low"))
	mid := New(rank("mid"))
	high := New(rank("high"))

	// Registering twice keeps the first position.
	New(rank("low"))

	require.Equal(t, []rank{low, mid, high}, Values[rank]())

	type unknown string
	require.Nil(t, Values[unknown]())
}

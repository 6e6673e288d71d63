package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	a := make([]int, 0, 5)
	b := append(a[:0], 1, 2, 3, 4)
	c := append(a[:0], 4, 5, 6)

	assert.Equal(t, []int{}, a)
	assert.Equal(t, []int{4, 5, 6, 4}, b)
	assert.Equal(t, []int{4, 5, 6}, c)
}

func TestIsNil(t *testing.T) {
	var err error
	assert.True(t, IsNil(err))

	var traceableErr Error = NilError
	assert.True(t, IsNil(traceableErr))
}

func TestFileRankRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		assert.Equal(t, i, IndexFromFileRank(FileRankFromIndex(i)))
	}

	fr, err := FileRankFromString("c6")
	assert.True(t, IsNil(err))
	assert.Equal(t, FileRank{File(2), Rank(5)}, fr)
	assert.Equal(t, "c6", fr.String())
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveRoundTrip(t *testing.T) {
	m := NewMove(BoardIndexFromString("e2"), BoardIndexFromString("e4"))
	assert.Equal(t, "e2", StringFromBoardIndex(m.StartIndex()))
	assert.Equal(t, "e4", StringFromBoardIndex(m.EndIndex()))
	assert.Equal(t, NormalMove, m.Kind())
	assert.Equal(t, "e2e4", m.String())
}

func TestPromotionMoveString(t *testing.T) {
	m := NewPromotionMove(BoardIndexFromString("e7"), BoardIndexFromString("e8"), Queen)
	assert.Equal(t, PromotionMove, m.Kind())
	assert.Equal(t, Queen, m.PromotionPiece())
	assert.Equal(t, "e7e8q", m.String())
}

func TestDropMoveString(t *testing.T) {
	m := NewDropMove(Knight, BoardIndexFromString("f3"))
	assert.Equal(t, DropMove, m.Kind())
	assert.Equal(t, Knight, m.DropPiece())
	assert.Equal(t, m.StartIndex(), m.EndIndex())
	assert.Equal(t, "N@f3", m.String())
}

func TestCastlingMoveStoresRookSquare(t *testing.T) {
	m := NewCastlingMove(BoardIndexFromString("e1"), BoardIndexFromString("h1"))
	assert.Equal(t, CastlingMove, m.Kind())
	assert.Equal(t, "e1h1", m.String())
}

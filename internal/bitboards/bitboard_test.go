package bitboards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	. "github.com/varchess/varchess/internal/helpers"
)

func TestSingleBitboard(t *testing.T) {
	assert.Equal(t, BitboardFromStrings([8]string{
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"10000000",
	}), SingleBitboard(BoardIndexFromString("a1")))
}

func TestKnightAttacksFromCorner(t *testing.T) {
	attacks := KnightAttackMasks[BoardIndexFromString("a1")]
	assert.Equal(t, BitboardFromStrings([8]string{
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"01000000",
		"00100000",
		"00000000",
	}), attacks)
}

func TestPawnAttackMasks(t *testing.T) {
	assert.Equal(t, BitboardFromStrings([8]string{
		"00000000",
		"00000000",
		"00000000",
		"00000000",
		"00010100",
		"00000000",
		"00000000",
		"00000000",
	}), PawnAttackMasks[White][BoardIndexFromString("e3")])

	// Edge pawns only attack inward.
	assert.Equal(t, BitboardFromStrings([8]string{
		"00000000",
		"00000000",
		"00000000",
		"01000000",
		"00000000",
		"00000000",
		"00000000",
		"00000000",
	}), PawnAttackMasks[Black][BoardIndexFromString("a6")])
}

func TestRookAttacksWithBlockers(t *testing.T) {
	occupancy := BitboardWithAllLocationsSet([]string{"d4", "d6", "f4"})
	attacks := RookAttacks(BoardIndexFromString("d4"), occupancy)

	assert.Equal(t, BitboardFromStrings([8]string{
		"00000000",
		"00000000",
		"00010000",
		"00010000",
		"11101100",
		"00010000",
		"00010000",
		"00010000",
	}), attacks)
}

func TestSliderTablesReadyBeforeDerivedMasks(t *testing.T) {
	// BetweenMasks is built from the magic lookups during package
	// initialization, so the slider tables have to be populated first.
	for i := 0; i < 64; i++ {
		assert.NotEmpty(t, RookMagicTable.Moves[i])
		assert.NotEmpty(t, BishopMagicTable.Moves[i])
	}

	d4 := BoardIndexFromString("d4")
	d7 := BoardIndexFromString("d7")
	assert.Equal(t,
		RookAttacks(d4, SingleBitboard(d7))&RookAttacks(d7, SingleBitboard(d4)),
		BetweenMasks[d4][d7])
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"d5", "d6"}), BetweenMasks[d4][d7])
}

func TestBetweenAndLineMasks(t *testing.T) {
	a1 := BoardIndexFromString("a1")
	h8 := BoardIndexFromString("h8")

	between := BetweenMasks[a1][h8]
	assert.Equal(t, 6, OnesCount(between))
	assert.NotZero(t, between&SingleBitboard(BoardIndexFromString("d4")))

	line := LineMasks[a1][h8]
	assert.Equal(t, 8, OnesCount(line))
	assert.NotZero(t, line&SingleBitboard(a1))
	assert.NotZero(t, line&SingleBitboard(h8))

	// Unaligned squares have no line.
	assert.Zero(t, LineMasks[a1][BoardIndexFromString("b3")])
}

func TestGridRegions(t *testing.T) {
	assert.True(t, SameGridRegion(BoardIndexFromString("a1"), BoardIndexFromString("b2")))
	assert.False(t, SameGridRegion(BoardIndexFromString("b2"), BoardIndexFromString("c2")))

	region := GridRegionMasks[BoardIndexFromString("e5")]
	assert.Equal(t, BitboardWithAllLocationsSet([]string{"e5", "f5", "e6", "f6"}), region)
}

func TestForwardSpanMasks(t *testing.T) {
	span := ForwardSpanMasks[White][BoardIndexFromString("e2")]
	assert.NotZero(t, span&SingleBitboard(BoardIndexFromString("d8")))
	assert.NotZero(t, span&SingleBitboard(BoardIndexFromString("f3")))
	assert.Zero(t, span&SingleBitboard(BoardIndexFromString("e2")))
	assert.Zero(t, span&SingleBitboard(BoardIndexFromString("g4")))
}

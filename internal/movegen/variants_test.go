package movegen

import (
	"testing"

	. "github.com/varchess/varchess/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func dropStrings(moves []Move) []string {
	result := []string{}
	for _, m := range moves {
		if m.Kind() == DropMove {
			result = append(result, m.String())
		}
	}
	return result
}

func TestHordeFirstRankPawnsDoublePush(t *testing.T) {
	for _, fen := range []string{
		"k7/8/8/8/8/8/8/P7 w - - 0 1",
		"k7/8/8/8/8/8/P7/8 w - - 0 1",
	} {
		pos := mustPosition(t, "horde", fen)
		moves := Generate(ModeLegal, pos, nil)
		assert.Equal(t, 2, len(moves), fen)
	}
}

func TestCrazyhouseDropsBlockCheck(t *testing.T) {
	pos := mustPosition(t, "crazyhouse", "4k3/8/4r3/8/8/8/8/4K3[Q] w - - 0 1")
	assert.True(t, pos.InCheck())

	moves := Generate(ModeLegal, pos, nil)
	assert.ElementsMatch(t,
		[]string{"Q@e2", "Q@e3", "Q@e4", "Q@e5"},
		dropStrings(moves))
	assert.Equal(t, 8, len(moves)) // four blocks, four king steps
}

func TestPlacementBishopDropsKeepOppositeColors(t *testing.T) {
	pos := mustPosition(t, "placement", "4k3/pppppppp/8/8/8/8/PPPPPPPP/2B1K3[B] w - - 0 1")
	assert.True(t, pos.InPlacement())

	moves := Generate(ModeLegal, pos, nil)
	assert.ElementsMatch(t,
		[]string{"B@b1", "B@d1", "B@f1", "B@h1"},
		dropStrings(moves))
}

func TestAtomicNeverCapturesNextToOwnKing(t *testing.T) {
	// h2xb2 would blast the a1 king along with the knight.
	pos := mustPosition(t, "atomic", "6k1/8/8/8/8/8/1n5R/K7 w - - 0 1")

	assert.NotContains(t, moveStrings(Generate(ModeCaptures, pos, nil)), "h2b2")
	assert.NotContains(t, moveStrings(Generate(ModeLegal, pos, nil)), "h2b2")
}

func TestRaceKingAdvancesAreStagedAsCaptures(t *testing.T) {
	pos := mustPosition(t, "racingkings", "8/8/8/8/8/8/k6K/8 w - - 0 1")

	captures := moveStrings(Generate(ModeCaptures, pos, nil))
	assert.ElementsMatch(t, []string{"h2g3", "h2h3"}, captures)

	quiets := moveStrings(Generate(ModeQuiets, pos, nil))
	assert.ElementsMatch(t, []string{"h2g1", "h2g2", "h2h1"}, quiets)
}

func TestRaceEndsOnceAKingFinishes(t *testing.T) {
	pos := mustPosition(t, "racingkings", "7K/8/8/8/8/8/k7/8 b - - 0 1")
	assert.True(t, pos.VariantEnded())
	assert.Empty(t, Generate(ModeLegal, pos, nil))
}

func TestGridMovesMustLeaveTheRegion(t *testing.T) {
	// Every pawn and king move stays inside its own 2x2 cell.
	pos := mustPosition(t, "grid", "k7/8/8/8/8/4P3/8/K7 w - - 0 1")
	assert.Empty(t, Generate(ModeLegal, pos, nil))

	pos = mustPosition(t, "grid", "k7/8/8/8/8/8/1K6/8 w - - 0 1")
	assert.ElementsMatch(t,
		[]string{"b2a3", "b2b3", "b2c3", "b2c2", "b2c1"},
		moveStrings(Generate(ModeLegal, pos, nil)))
}

func TestTwoKingsBothKingsMove(t *testing.T) {
	pos := mustPosition(t, "twokings", "k7/8/8/8/8/8/8/K2K4 w - - 0 1")

	moves := moveStrings(Generate(ModeLegal, pos, nil))
	assert.Equal(t, 8, len(moves))
	assert.Contains(t, moves, "a1b2")
	assert.Contains(t, moves, "d1d2")
}

func TestExtinctionAllowsKingPromotion(t *testing.T) {
	pos := mustPosition(t, "extinction", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	moves := moveStrings(Generate(ModeLegal, pos, nil))
	assert.Contains(t, moves, "a7a8k")
	assert.Contains(t, moves, "a7a8q")
}

func TestExtinctionKingMayStepIntoAttack(t *testing.T) {
	// Extinction kings are ordinary pieces: losing one to a capture is a
	// game outcome, not an illegal move, so attacked squares stay open.
	pos := mustPosition(t, "extinction", "4k3/8/8/8/8/1r6/8/K7 w - - 0 1")

	moves := moveStrings(Generate(ModeLegal, pos, nil))
	assert.ElementsMatch(t, []string{"a1a2", "a1b1", "a1b2"}, moves)
}

func TestSuicideCapturesAreForced(t *testing.T) {
	pos := mustPosition(t, "suicide", "8/8/8/8/8/2p5/1P6/8 w - - 0 1")
	assert.True(t, pos.CanCapture())

	moves := moveStrings(Generate(ModeLegal, pos, nil))
	assert.ElementsMatch(t, []string{"b2c3"}, moves)
}

func TestSuicidePromotesToKing(t *testing.T) {
	pos := mustPosition(t, "suicide", "8/P7/8/8/8/8/8/2k5 w - - 0 1")

	moves := moveStrings(Generate(ModeLegal, pos, nil))
	assert.ElementsMatch(t,
		[]string{"a7a8q", "a7a8r", "a7a8b", "a7a8n", "a7a8k"},
		moves)
}

func TestLosersUnderpromotionsExcludeKing(t *testing.T) {
	pos := mustPosition(t, "losers", "8/P7/8/8/8/8/8/k6K w - - 0 1")

	moves := moveStrings(Generate(ModeLegal, pos, nil))
	assert.NotContains(t, moves, "a7a8k")
	assert.Contains(t, moves, "a7a8q")
	assert.Equal(t, 7, len(moves))
}

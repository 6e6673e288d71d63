package movegen

import (
	"testing"

	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
	. "github.com/varchess/varchess/internal/position"
	"github.com/stretchr/testify/assert"
)

func mustPosition(t *testing.T, variantName string, fen string) *Position {
	rules, err := RulesFromName(variantName)
	assert.True(t, IsNil(err))

	pos, err := PositionFromFen(fen, rules)
	assert.True(t, IsNil(err))
	return pos
}

func moveStrings(moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = m.String()
	}
	return result
}

func TestInitialPositionHasTwentyMoves(t *testing.T) {
	pos := mustPosition(t, "standard", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	moves := Generate(ModeLegal, pos, nil)
	assert.Equal(t, 20, len(moves))
}

func TestCapturesAndQuietsPartitionNonEvasions(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos := mustPosition(t, "standard", fen)

		captures := Generate(ModeCaptures, pos, nil)
		quiets := Generate(ModeQuiets, pos, nil)
		nonEvasions := Generate(ModeNonEvasions, pos, nil)

		union := append(moveStrings(captures), moveStrings(quiets)...)
		assert.ElementsMatch(t, union, moveStrings(nonEvasions), fen)
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// The rook on e8 and the bishop on h4 both check e1.
	pos := mustPosition(t, "standard", "4r2k/8/8/8/7b/8/8/4K3 w - - 0 1")
	assert.True(t, pos.InCheck())
	assert.Equal(t, 2, OnesCount(pos.Checkers()))

	moves := Generate(ModeLegal, pos, nil)
	assert.ElementsMatch(t, []string{"e1d1", "e1d2", "e1f1"}, moveStrings(moves))
}

func TestEnPassantEvadesPawnCheck(t *testing.T) {
	// Black just pushed d7d5, checking c4; e5xd6 removes the checker.
	pos := mustPosition(t, "standard", "4k3/8/8/3pP3/2K5/8/8/8 w - d6 0 2")
	assert.True(t, pos.InCheck())

	moves := Generate(ModeLegal, pos, nil)
	assert.Contains(t, moveStrings(moves), "e5d6")
}

func TestEnPassantNeverEvadesDiscoveredCheck(t *testing.T) {
	// g7g5 unmasked the h8 bishop; capturing the pawn en passant leaves
	// the check standing, while blocking on f6 works.
	pos := mustPosition(t, "standard", "1k5b/8/8/4KPp1/8/8/8/8 w - g6 0 2")
	assert.True(t, pos.InCheck())

	moves := moveStrings(Generate(ModeLegal, pos, nil))
	assert.NotContains(t, moves, "f5g6")
	assert.Contains(t, moves, "f5f6")
}

func TestDiscoveredQuietChecks(t *testing.T) {
	// The knight on d2 shields the d1 rook from the black king: every
	// quiet knight move is a discovered check.
	pos := mustPosition(t, "standard", "3k4/8/8/8/8/8/3N4/3RK3 w - - 0 1")

	moves := Generate(ModeQuietChecks, pos, nil)
	assert.Equal(t, 6, len(moves))
	for _, m := range moves {
		assert.Equal(t, BoardIndexFromString("d2"), m.StartIndex(), m.String())
	}
}

func TestQuietChecksActuallyCheck(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"3k4/8/8/8/8/8/3N4/3RK3 w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range fens {
		pos := mustPosition(t, "standard", fen)

		legal := moveStrings(Generate(ModeLegal, pos, nil))
		for _, m := range Generate(ModeQuietChecks, pos, nil) {
			assert.Equal(t, XX, pos.Board[m.EndIndex()], m.String())

			if !Contains(legal, m.String()) {
				// Pseudo-legal output may still expose its own king.
				continue
			}
			next, err := pos.Apply(m)
			assert.True(t, IsNil(err))
			assert.True(t, next.InCheck(), "%v should check in %v", m.String(), fen)
		}
	}
}

func TestGenerateAppendsToExistingBuffer(t *testing.T) {
	pos := mustPosition(t, "standard", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	buffer := GetMovesBuffer()
	defer ReleaseMovesBuffer(buffer)

	moves := Generate(ModeLegal, pos, *buffer)
	assert.Equal(t, 20, len(moves))

	moves = Generate(ModeLegal, pos, moves)
	assert.Equal(t, 40, len(moves))
}

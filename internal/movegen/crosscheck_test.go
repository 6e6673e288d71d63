package movegen

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
	"github.com/stretchr/testify/assert"
)

// uciString renders a move the way UCI engines do: castling becomes a
// king move onto its landing square instead of onto the rook.
func uciString(m Move) string {
	if m.Kind() == CastlingMove {
		kingTo, _ := CastlingLandingSquares(m.StartIndex(), m.EndIndex())
		return StringFromBoardIndex(m.StartIndex()) + StringFromBoardIndex(kingTo)
	}
	return m.String()
}

func TestLegalMovesMatchDragontooth(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	}

	for _, fen := range fens {
		pos := mustPosition(t, "standard", fen)
		ours := []string{}
		for _, m := range Generate(ModeLegal, pos, nil) {
			ours = append(ours, uciString(m))
		}

		board := dragontoothmg.ParseFen(fen)
		theirs := []string{}
		for _, m := range board.GenerateLegalMoves() {
			theirs = append(theirs, m.String())
		}

		assert.ElementsMatch(t, theirs, ours, fen)
	}
}

func TestPerftMatchesDragontoothAfterReplies(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep comparison")
	}

	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos := mustPosition(t, "standard", fen)

	board := dragontoothmg.ParseFen(fen)
	for _, theirMove := range board.GenerateLegalMoves() {
		unapply := board.Apply(theirMove)
		expected := len(board.GenerateLegalMoves())
		unapply()

		found := false
		for _, m := range Generate(ModeLegal, pos, nil) {
			if uciString(m) != theirMove.String() {
				continue
			}
			found = true
			next, err := pos.Apply(m)
			assert.True(t, IsNil(err))
			assert.Equal(t, expected, len(Generate(ModeLegal, next, nil)), theirMove.String())
		}
		assert.True(t, found, theirMove.String())
	}
}

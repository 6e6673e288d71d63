package movegen

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	. "github.com/varchess/varchess/internal/helpers"
	. "github.com/varchess/varchess/internal/position"
	"github.com/stretchr/testify/assert"
)

func pp(t any) string {
	return spew.Sdump(t)
}

type perftResult struct {
	leaves     int
	captures   int
	enPassants int
	castles    int
}

func (p *perftResult) add(o perftResult) {
	p.leaves += o.leaves
	p.captures += o.captures
	p.enPassants += o.enPassants
	p.castles += o.castles
}

func countMovesForDepth(t *testing.T, pos *Position, depth int) perftResult {
	buffer := GetMovesBuffer()
	defer ReleaseMovesBuffer(buffer)

	moves := Generate(ModeLegal, pos, *buffer)

	result := perftResult{}
	for _, m := range moves {
		if depth == 1 {
			result.leaves++
			if isCapture(pos, m) {
				result.captures++
			}
			switch m.Kind() {
			case EnPassantMove:
				result.enPassants++
			case CastlingMove:
				result.castles++
			}
			continue
		}

		next, err := pos.Apply(m)
		assert.True(t, IsNil(err))
		result.add(countMovesForDepth(t, next, depth-1))
	}
	return result
}

func assertPerft(t *testing.T, fen string, expected []perftResult) {
	pos := mustPosition(t, "standard", fen)
	for depth, want := range expected {
		result := countMovesForDepth(t, pos, depth+1)
		assert.Equal(t, want, result, "%v at depth %v: %v", fen, depth+1, pp(result))
	}
}

func TestPerftInitialPosition(t *testing.T) {
	expected := []perftResult{
		{20, 0, 0, 0},
		{400, 0, 0, 0},
		{8902, 34, 0, 0},
	}
	if !testing.Short() {
		expected = append(expected, perftResult{197281, 1576, 0, 0})
	}
	assertPerft(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", expected)
}

func TestPerftKiwipete(t *testing.T) {
	expected := []perftResult{
		{48, 8, 0, 2},
		{2039, 351, 1, 91},
	}
	if !testing.Short() {
		expected = append(expected, perftResult{97862, 17102, 45, 3162})
	}
	assertPerft(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", expected)
}

func TestPerftEnPassantPins(t *testing.T) {
	assertPerft(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []perftResult{
		{14, 1, 0, 0},
		{191, 14, 0, 0},
		{2812, 209, 2, 0},
	})
}

func TestPerftPromotions(t *testing.T) {
	assertPerft(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []perftResult{
		{6, 0, 0, 0},
		{264, 87, 0, 6},
		{9467, 1021, 4, 0},
	})
}

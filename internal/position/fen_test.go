package position

import (
	"testing"

	. "github.com/varchess/varchess/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestFenRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/3pP3/2K5/8/8/8 w - d6 0 2",
	}

	for _, fen := range fens {
		pos, err := PositionFromFen(fen, RulesForVariant(VariantStandard))
		assert.True(t, IsNil(err))
		assert.Equal(t, fen, pos.Fen())
	}
}

func TestFenRoundTripCrazyhouse(t *testing.T) {
	fen := "r3k3/8/8/2Q~5/8/8/8/4K3[QRb] w - - 0 1"
	pos, err := PositionFromFen(fen, RulesForVariant(VariantCrazyhouse))
	assert.True(t, IsNil(err))

	assert.Equal(t, 1, pos.HandCount(White, Queen))
	assert.Equal(t, 1, pos.HandCount(White, Rook))
	assert.Equal(t, 1, pos.HandCount(Black, Bishop))
	assert.NotZero(t, pos.Promoted)

	assert.Equal(t, fen, pos.Fen())
}

func TestCastlingRightsRequireRookAndKingInPlace(t *testing.T) {
	// The a1 rook is gone: the queenside right silently drops.
	pos, err := PositionFromFen("r3k2r/8/8/8/8/8/8/4K2R w KQkq - 0 1", RulesForVariant(VariantStandard))
	assert.True(t, IsNil(err))

	assert.True(t, pos.CastlingAllowed[White][Kingside])
	assert.False(t, pos.CastlingAllowed[White][Queenside])
	assert.True(t, pos.CastlingAllowed[Black][Kingside])
	assert.True(t, pos.CastlingAllowed[Black][Queenside])
}

func TestFenRejectsGarbage(t *testing.T) {
	for _, fen := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq zz 0 1",
	} {
		_, err := PositionFromFen(fen, RulesForVariant(VariantStandard))
		assert.False(t, IsNil(err), fen)
	}
}

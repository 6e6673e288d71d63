package movegen

import (
	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
	. "github.com/varchess/varchess/internal/position"
)

func generateAllDrops(mode GenMode, pos *Position, moves []Move, target Bitboard) []Move {
	us := pos.SideToMove

	var b Bitboard
	switch mode {
	case ModeEvasions:
		// The checker's square is in the target for captures; a drop
		// can only block.
		b = target ^ pos.Checkers()
	case ModeNonEvasions:
		b = target ^ pos.OccupiedBy(us.Other())
	default:
		b = target
	}

	if pos.InPlacement() {
		if us == White {
			b &= RankMasks[0]
		} else {
			b &= RankMasks[7]
		}
	}

	checks := mode == ModeQuietChecks

	moves = generateDrops(Pawn, checks, pos, moves, b&^(RankMasks[0]|RankMasks[7]))
	moves = generateDrops(Knight, checks, pos, moves, b)
	moves = generateDrops(Bishop, checks, pos, moves, b)
	moves = generateDrops(Rook, checks, pos, moves, b)
	moves = generateDrops(Queen, checks, pos, moves, b)
	if pos.InPlacement() {
		moves = generateDrops(King, checks, pos, moves, b)
	}

	return moves
}

func generateDrops(pieceType PieceType, checks bool, pos *Position, moves []Move, b Bitboard) []Move {
	us := pos.SideToMove
	if pos.HandCount(us, pieceType) == 0 {
		return moves
	}

	if pos.InPlacement() && pos.HandCount(us, Bishop) > 0 {
		// Keep the bishops on opposite colors: a placed bishop claims
		// the other color, and the last square of an unclaimed color is
		// reserved for the bishop still in hand.
		if pieceType == Bishop {
			if pos.Pieces(us, Bishop)&DarkSquares != 0 {
				b &= ^DarkSquares
			}
			if pos.Pieces(us, Bishop)&^DarkSquares != 0 {
				b &= DarkSquares
			}
		} else {
			if pos.Pieces(us, Bishop)&DarkSquares == 0 && OnesCount(b&DarkSquares) <= 1 {
				b &= ^DarkSquares
			}
			if pos.Pieces(us, Bishop)&^DarkSquares == 0 && OnesCount(b&^DarkSquares) <= 1 {
				b &= DarkSquares
			}
		}
	}

	if checks {
		b &= pos.CheckSquares(pieceType)
	}

	for b != 0 {
		var to int
		to, b = b.NextIndexOfOne()
		moves = append(moves, NewDropMove(pieceType, to))
	}

	return moves
}

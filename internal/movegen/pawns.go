package movegen

import (
	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
	. "github.com/varchess/varchess/internal/position"
)

// shiftPawns moves every pawn of b one step along offset, dropping the
// ones that would walk off the board.
func shiftPawns(b Bitboard, offset int) Bitboard {
	return RotateTowardsIndex64(b&PremoveMaskFromOffset(offset), offset)
}

func makePromotions(mode GenMode, rules Rules, moves []Move, to int, offset int, enemyKsq int) []Move {
	from := to - offset

	switch rules.Variant {
	case VariantSuicide:
		if mode == ModeQuiets || mode == ModeCaptures || mode == ModeNonEvasions {
			moves = append(moves,
				NewPromotionMove(from, to, Queen),
				NewPromotionMove(from, to, Rook),
				NewPromotionMove(from, to, Bishop),
				NewPromotionMove(from, to, Knight),
				NewPromotionMove(from, to, King))
		}
		return moves
	case VariantLosers:
		if mode != ModeQuietChecks {
			moves = append(moves,
				NewPromotionMove(from, to, Queen),
				NewPromotionMove(from, to, Rook),
				NewPromotionMove(from, to, Bishop),
				NewPromotionMove(from, to, Knight))
		}
		return moves
	}

	if mode == ModeCaptures || mode == ModeEvasions || mode == ModeNonEvasions {
		moves = append(moves, NewPromotionMove(from, to, Queen))
	}

	if mode == ModeQuiets || mode == ModeEvasions || mode == ModeNonEvasions {
		moves = append(moves,
			NewPromotionMove(from, to, Rook),
			NewPromotionMove(from, to, Bishop),
			NewPromotionMove(from, to, Knight))
		if rules.KingPromotion() && rules.Variant == VariantExtinction {
			moves = append(moves, NewPromotionMove(from, to, King))
		}
	}

	// The knight is the only underpromotion that can give a direct check
	// the queen promotion doesn't already cover.
	if mode == ModeQuietChecks && enemyKsq != NoSquare &&
		KnightAttackMasks[to]&SingleBitboard(enemyKsq) != 0 {
		moves = append(moves, NewPromotionMove(from, to, Knight))
	}

	return moves
}

func generatePawnMoves(mode GenMode, pos *Position, moves []Move, target Bitboard) []Move {
	us := pos.SideToMove
	them := us.Other()

	var rank7, zone Bitboard
	if us == White {
		rank7, zone = RankMasks[6], RankMasks[2]
		if pos.Rules.Variant == VariantHorde {
			zone |= RankMasks[1]
		}
	} else {
		rank7, zone = RankMasks[1], RankMasks[5]
		if pos.Rules.Variant == VariantHorde {
			zone |= RankMasks[6]
		}
	}
	up := PawnPushOffsets[us]
	upRight := PawnCaptureOffsets[us][0]
	upLeft := PawnCaptureOffsets[us][1]

	enemyKsq := pos.KingSquare(them)

	pawnsOn7 := pos.Pieces(us, Pawn) & rank7
	pawnsNotOn7 := pos.Pieces(us, Pawn) &^ rank7

	var enemies Bitboard
	switch mode {
	case ModeEvasions:
		enemies = pos.OccupiedBy(them) & target
	case ModeCaptures:
		enemies = target
	default:
		enemies = pos.OccupiedBy(them)
	}
	if pos.Rules.ExplodesOnCapture() {
		if mode == ModeCaptures || mode == ModeNonEvasions {
			enemies &= target
		} else {
			enemies &= ^AdjacentSquares(pos.Pieces(us, King))
		}
	}

	var emptySquares Bitboard

	// Single and double pushes, no promotions.
	if mode != ModeCaptures {
		if mode == ModeQuiets || mode == ModeQuietChecks {
			emptySquares = target
		} else {
			emptySquares = ^pos.Occupied()
		}
		if pos.Rules.Variant == VariantSuicide {
			emptySquares &= target
		}

		b1 := shiftPawns(pawnsNotOn7, up) & emptySquares
		b2 := shiftPawns(b1&zone, up) & emptySquares

		if pos.Rules.Variant == VariantLosers {
			b1 &= target
			b2 &= target
		}
		if mode == ModeEvasions {
			// Only blocking squares evade.
			b1 &= target
			b2 &= target
		}

		if mode == ModeQuietChecks {
			b1 &= pos.AttacksFrom(Pawn, enemyKsq, them)
			b2 &= pos.AttacksFrom(Pawn, enemyKsq, them)

			// Pushes that unmask a discovered check. Only possible off
			// the enemy king's file, since these are never captures.
			dcCandidates := pos.BlockersForKing(them) & pawnsNotOn7
			if dcCandidates != 0 {
				kingFile := FileMasks[FileRankFromIndex(enemyKsq).File]
				dc1 := shiftPawns(dcCandidates, up) & emptySquares & ^kingFile
				dc2 := shiftPawns(dc1&zone, up) & emptySquares

				b1 |= dc1
				b2 |= dc2
			}
		}

		for b1 != 0 {
			var to int
			to, b1 = b1.NextIndexOfOne()
			moves = append(moves, NewMove(to-up, to))
		}
		for b2 != 0 {
			var to int
			to, b2 = b2.NextIndexOfOne()
			moves = append(moves, NewMove(to-up-up, to))
		}
	}

	// Promotions and underpromotions.
	if pawnsOn7 != 0 {
		if mode == ModeCaptures {
			emptySquares = ^pos.Occupied()
			// Under blast rules a checked side only promotes when the
			// promotion wins or explodes the checkers.
			if pos.Rules.ExplodesOnCapture() && pos.InCheck() {
				emptySquares &= target
			}
		}
		if pos.Rules.Variant == VariantSuicide || pos.Rules.Variant == VariantLosers {
			emptySquares &= target
		}
		if mode == ModeEvasions {
			emptySquares &= target
		}

		b1 := shiftPawns(pawnsOn7, upRight) & enemies
		b2 := shiftPawns(pawnsOn7, upLeft) & enemies
		b3 := shiftPawns(pawnsOn7, up) & emptySquares

		for b1 != 0 {
			var to int
			to, b1 = b1.NextIndexOfOne()
			moves = makePromotions(mode, pos.Rules, moves, to, upRight, enemyKsq)
		}
		for b2 != 0 {
			var to int
			to, b2 = b2.NextIndexOfOne()
			moves = makePromotions(mode, pos.Rules, moves, to, upLeft, enemyKsq)
		}
		for b3 != 0 {
			var to int
			to, b3 = b3.NextIndexOfOne()
			moves = makePromotions(mode, pos.Rules, moves, to, up, enemyKsq)
		}
	}

	// Standard and en-passant captures.
	if mode == ModeCaptures || mode == ModeEvasions || mode == ModeNonEvasions {
		b1 := shiftPawns(pawnsNotOn7, upRight) & enemies
		b2 := shiftPawns(pawnsNotOn7, upLeft) & enemies

		for b1 != 0 {
			var to int
			to, b1 = b1.NextIndexOfOne()
			moves = append(moves, NewMove(to-upRight, to))
		}
		for b2 != 0 {
			var to int
			to, b2 = b2.NextIndexOfOne()
			moves = append(moves, NewMove(to-upLeft, to))
		}

		epIndex := pos.EnPassantIndex()
		if epIndex != NoSquare {
			// En passant evades only when the checker is the double
			// pushed pawn itself; against a discovered check it is no
			// help at all.
			if mode == ModeEvasions && target&SingleBitboard(epIndex-up) == 0 {
				return moves
			}

			attackers := pawnsNotOn7 & PawnAttackMasks[them][epIndex]
			for attackers != 0 {
				var from int
				from, attackers = attackers.NextIndexOfOne()
				moves = append(moves, NewEnPassantMove(from, epIndex))
			}
		}
	}

	return moves
}

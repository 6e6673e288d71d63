package movegen

import (
	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
	. "github.com/varchess/varchess/internal/position"
)

type GenMode int

const (
	// Pseudo-legal captures and queen promotions. The side to move must
	// not be in check.
	ModeCaptures GenMode = iota
	// Pseudo-legal non-captures and underpromotions. Not in check.
	ModeQuiets
	// Captures plus quiets. Not in check.
	ModeNonEvasions
	// Check evasions. The side to move must be in check.
	ModeEvasions
	// Non-captures that give check. Not in check.
	ModeQuietChecks
	// The fully legal subset, any position.
	ModeLegal
)

type MovesBuffer []Move

var GetMovesBuffer, ReleaseMovesBuffer, StatsMovesBuffer = CreatePool(
	func() MovesBuffer {
		return make(MovesBuffer, 0, 256)
	},
	func(x *MovesBuffer) {
		*x = (*x)[:0]
	},
)

// Generate appends the moves of the requested mode to moves and returns
// the extended slice. The position is never mutated; concurrent calls
// against the same snapshot with distinct buffers are safe.
func Generate(mode GenMode, pos *Position, moves []Move) []Move {
	switch mode {
	case ModeEvasions:
		return generateEvasions(pos, moves)
	case ModeQuietChecks:
		return generateQuietChecks(pos, moves)
	case ModeLegal:
		return generateLegal(pos, moves)
	}
	return generateStaged(mode, pos, moves)
}

func generateStaged(mode GenMode, pos *Position, moves []Move) []Move {
	us := pos.SideToMove
	them := us.Other()

	var target Bitboard
	switch mode {
	case ModeCaptures:
		target = pos.OccupiedBy(them)
	case ModeQuiets:
		target = ^pos.Occupied()
	case ModeNonEvasions:
		target = ^pos.OccupiedBy(us)
	}

	if pos.Rules.ForcedCapture() && pos.CanCapture() {
		target &= pos.OccupiedBy(them)
	}
	if pos.Rules.ExplodesOnCapture() && (mode == ModeCaptures || mode == ModeNonEvasions) {
		// A capture next to the own king would blast it away.
		target &= ^(pos.OccupiedBy(them) & AdjacentSquares(pos.Pieces(us, King)))
	}

	return generateAll(mode, pos, moves, target)
}

func generateAll(mode GenMode, pos *Position, moves []Move, target Bitboard) []Move {
	us := pos.SideToMove
	checks := mode == ModeQuietChecks

	placementOnly := pos.InPlacement() && pos.TotalHandCount(us) > 0
	if !placementOnly {
		moves = generatePawnMoves(mode, pos, moves, target)
		moves = generatePieceMoves(Knight, checks, pos, moves, target)
		moves = generatePieceMoves(Bishop, checks, pos, moves, target)
		moves = generatePieceMoves(Rook, checks, pos, moves, target)
		moves = generatePieceMoves(Queen, checks, pos, moves, target)
	}

	if pos.Rules.AllowsDrops() && mode != ModeCaptures && pos.TotalHandCount(us) > 0 {
		moves = generateAllDrops(mode, pos, moves, target)
	}

	if pos.PawnArmy(us) {
		return moves
	}

	switch pos.Rules.Variant {
	case VariantSuicide:
		moves = generateEveryKingMoves(pos, moves, target)
		if pos.CanCapture() {
			return moves
		}
	case VariantExtinction:
		moves = generateEveryKingMoves(pos, moves, target)
	case VariantTwoKings:
		if mode != ModeEvasions {
			moves = generateEveryKingMoves(pos, moves, target)
		}
	default:
		if mode != ModeQuietChecks && mode != ModeEvasions {
			ksq := pos.KingSquare(us)
			if ksq == NoSquare {
				// Still in hand during the placement phase.
				break
			}
			b := pos.AttacksFrom(King, ksq, us) & target
			if pos.Rules.RaceObjective() {
				// Bias toward the finish rank: pull empty forward steps
				// into the capture stage, keep them out of the quiets.
				if mode == ModeCaptures {
					b |= pos.AttacksFrom(King, ksq, us) & ForwardSpanMasks[White][ksq] & ^pos.Occupied()
				}
				if mode == ModeQuiets {
					b &= ^ForwardSpanMasks[White][ksq]
				}
			}
			for b != 0 {
				var to int
				to, b = b.NextIndexOfOne()
				moves = append(moves, NewMove(ksq, to))
			}
		}
	}

	if mode != ModeQuietChecks && mode != ModeEvasions && mode != ModeCaptures {
		if !(pos.Rules.Variant == VariantLosers && pos.CanCapture()) {
			moves = generateCastlingMoves(pos, moves)
		}
	}

	return moves
}

func generatePieceMoves(pieceType PieceType, checks bool, pos *Position, moves []Move, target Bitboard) []Move {
	us := pos.SideToMove
	them := us.Other()

	pieces := pos.Pieces(us, pieceType)
	for pieces != 0 {
		var from int
		from, pieces = pieces.NextIndexOfOne()

		if checks {
			if pieceType == Bishop || pieceType == Rook || pieceType == Queen {
				if pseudoAttacks(pieceType, from)&target&pos.CheckSquares(pieceType) == 0 {
					continue
				}
			}
			// A blocker of the enemy king only checks by discovery,
			// which the discovery pass already produced.
			if pos.BlockersForKing(them)&SingleBitboard(from) != 0 {
				continue
			}
		}

		b := pos.AttacksFrom(pieceType, from, us) & target
		if checks {
			b &= pos.CheckSquares(pieceType)
		}

		for b != 0 {
			var to int
			to, b = b.NextIndexOfOne()
			moves = append(moves, NewMove(from, to))
		}
	}

	return moves
}

func pseudoAttacks(pieceType PieceType, from int) Bitboard {
	switch pieceType {
	case Bishop:
		return PseudoBishopAttacks[from]
	case Rook:
		return PseudoRookAttacks[from]
	default:
		return PseudoQueenAttacks[from]
	}
}

// generateEveryKingMoves steps every king the side controls, for rule
// sets where kings are plural or ordinary.
func generateEveryKingMoves(pos *Position, moves []Move, target Bitboard) []Move {
	us := pos.SideToMove

	kings := pos.Pieces(us, King)
	for kings != 0 {
		var ksq int
		ksq, kings = kings.NextIndexOfOne()

		b := pos.AttacksFrom(King, ksq, us) & target
		for b != 0 {
			var to int
			to, b = b.NextIndexOfOne()
			moves = append(moves, NewMove(ksq, to))
		}
	}

	return moves
}

func generateCastlingMoves(pos *Position, moves []Move) []Move {
	us := pos.SideToMove

	ksq := pos.CastlingKing[us]
	if ksq == NoSquare {
		return moves
	}

	for _, side := range AllCastlingSides {
		if !pos.CastlingAllowed[us][side] {
			continue
		}
		rookSquare := pos.CastlingRooks[us][side]
		if pos.Occupied()&BetweenMasks[ksq][rookSquare] != 0 {
			continue
		}
		moves = append(moves, NewCastlingMove(ksq, rookSquare))
	}

	return moves
}

func generateEvasions(pos *Position, moves []Move) []Move {
	switch pos.Rules.Variant {
	case VariantSuicide, VariantExtinction, VariantRace:
		return moves
	}
	us := pos.SideToMove
	them := us.Other()
	if pos.InPlacement() && pos.HandCount(us, King) > 0 {
		return moves
	}

	ksq := pos.KingSquare(us)
	checkers := pos.Checkers()

	atomic := pos.Rules.ExplodesOnCapture()
	var kingRing Bitboard
	if atomic {
		kingRing = AdjacentSquares(pos.Pieces(them, King))

		// Blasts that explode the opposing king or every checker count
		// as evasions too.
		blastTarget := pos.OccupiedBy(them) & (checkers | AdjacentSquares(checkers))
		blastTarget |= kingRing
		blastTarget &= pos.OccupiedBy(them) & ^AdjacentSquares(pos.Pieces(us, King))
		moves = generateAll(ModeCaptures, pos, moves, blastTarget)
	}

	// The ray of each slider checker, extended through the king, so a
	// king step along it is recognized as still attacked.
	sliderAttacks := Bitboard(0)
	sliders := checkers & ^(pos.Pieces(them, Knight) | pos.Pieces(them, Pawn))
	for sliders != 0 {
		var checkIndex int
		checkIndex, sliders = sliders.NextIndexOfOne()

		line := LineMasks[checkIndex][ksq] ^ SingleBitboard(checkIndex)
		if pos.Rules.RegionBound() {
			line &= ^GridRegionMasks[checkIndex]
		}
		sliderAttacks |= line
	}

	if pos.Rules.MultiKing() {
		// Every king steps anywhere; Legal sorts out king safety.
		moves = generateEveryKingMoves(pos, moves, ^pos.OccupiedBy(us))
	} else {
		var b Bitboard
		if atomic {
			b = pos.AttacksFrom(King, ksq, us) & ^pos.Occupied() & ^(sliderAttacks & ^kingRing)
		} else {
			b = pos.AttacksFrom(King, ksq, us) & ^pos.OccupiedBy(us) & ^sliderAttacks
		}
		if pos.Rules.Variant == VariantLosers && pos.CanCapture() {
			b &= pos.OccupiedBy(them)
		}
		for b != 0 {
			var to int
			to, b = b.NextIndexOfOne()
			moves = append(moves, NewMove(ksq, to))
		}
	}

	if OnesCount(checkers) > 1 {
		// Double check, only a king move can save the day.
		return moves
	}

	checkIndex := checkers.FirstIndexOfOne()
	var target Bitboard
	if atomic {
		// Capturing the checker explodes next to the king; only blocks
		// evade through the standard sweep.
		target = BetweenMasks[checkIndex][ksq]
	} else {
		target = BetweenMasks[checkIndex][ksq] | SingleBitboard(checkIndex)
	}
	if pos.Rules.Variant == VariantLosers && pos.CanCapture() {
		target &= pos.OccupiedBy(them)
	}

	return generateAll(ModeEvasions, pos, moves, target)
}

func generateQuietChecks(pos *Position, moves []Move) []Move {
	us := pos.SideToMove
	them := us.Other()

	switch pos.Rules.Variant {
	case VariantSuicide, VariantExtinction, VariantRace:
		return moves
	case VariantLosers:
		if pos.CanCapture() {
			return moves
		}
	case VariantHorde:
		if pos.PawnArmy(them) {
			return moves
		}
	}
	if pos.InPlacement() && pos.HandCount(them, King) > 0 {
		return moves
	}

	// Discovery pass: moving a blocker of the enemy king checks no
	// matter where it lands.
	dc := pos.BlockersForKing(them) & pos.OccupiedBy(us)
	for dc != 0 {
		var from int
		from, dc = dc.NextIndexOfOne()

		pieceType := pos.Board[from].PieceType()
		if pieceType == Pawn {
			// Generated together with the direct pawn checks.
			continue
		}

		b := pos.AttacksFrom(pieceType, from, us) & ^pos.Occupied()
		if pieceType == King {
			// The king must leave the shared line to unmask.
			b &= ^PseudoQueenAttacks[pos.KingSquare(them)]
		}

		for b != 0 {
			var to int
			to, b = b.NextIndexOfOne()
			moves = append(moves, NewMove(from, to))
		}
	}

	return generateAll(ModeQuietChecks, pos, moves, ^pos.Occupied())
}

func isCapture(pos *Position, m Move) bool {
	if m.Kind() == EnPassantMove {
		return true
	}
	if m.Kind() == DropMove || m.Kind() == CastlingMove {
		return false
	}
	return pos.OccupiedBy(pos.SideToMove.Other())&SingleBitboard(m.EndIndex()) != 0
}

func generateLegal(pos *Position, moves []Move) []Move {
	if pos.VariantEnded() {
		return moves
	}

	us := pos.SideToMove
	pinned := pos.BlockersForKing(us) & pos.OccupiedBy(us)
	validate := pinned != 0
	switch pos.Rules.Variant {
	case VariantGrid, VariantRace, VariantTwoKings:
		validate = true
	}
	ksq := pos.KingSquare(us)

	start := len(moves)
	if pos.InCheck() {
		moves = generateEvasions(pos, moves)
	} else {
		moves = generateStaged(ModeNonEvasions, pos, moves)
	}

	// Swap-removal: a failing entry is overwritten by the last live one
	// and the buffer shrinks. Order is not preserved.
	cur := start
	for cur < len(moves) {
		m := moves[cur]

		needsValidation := (validate || m.StartIndex() == ksq || m.Kind() == EnPassantMove) &&
			m.Kind() != DropMove
		if pos.Rules.KingCapturable() {
			needsValidation = false
		}

		if needsValidation && !pos.Legal(m) {
			moves[cur] = moves[len(moves)-1]
			moves = moves[:len(moves)-1]
		} else if pos.Rules.ExplodesOnCapture() && isCapture(pos, m) && !pos.Legal(m) {
			moves[cur] = moves[len(moves)-1]
			moves = moves[:len(moves)-1]
		} else {
			cur++
		}
	}

	return moves
}

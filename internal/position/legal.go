package position

import (
	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
)

// Legal reports whether a pseudo-legal move is fully rule-legal. It
// never mutates the position: simulation happens on local copies of the
// piece bit-sets.
func (p *Position) Legal(m Move) bool {
	if p.Rules.KingCapturable() {
		return true
	}
	if m.Kind() == DropMove {
		// Drop targets were already restricted to empty squares (and,
		// in check, to blocking squares) during generation.
		return true
	}

	switch p.Rules.Variant {
	case VariantGrid, VariantRace, VariantTwoKings:
		return p.legalBySimulation(m)
	case VariantAtomic:
		return p.legalAtomic(m)
	}

	us := p.SideToMove
	them := us.Other()
	ksq := p.kingSquare[us]
	if ksq == NoSquare {
		// A kingless army has nothing to expose.
		return true
	}

	from := m.StartIndex()
	to := m.EndIndex()

	switch m.Kind() {
	case EnPassantMove:
		// The only move that removes two pieces from the mover's king
		// rank at once; recheck the sliders with both pawns lifted.
		capturedIndex := to - PawnPushOffsets[us]
		occupied := (p.Bits.Occupied &^ SingleBitboard(from) &^ SingleBitboard(capturedIndex)) | SingleBitboard(to)

		enemy := p.Bits.Players[them]
		return RookAttacks(ksq, occupied)&(enemy.Pieces[Rook]|enemy.Pieces[Queen]) == 0 &&
			BishopAttacks(ksq, occupied)&(enemy.Pieces[Bishop]|enemy.Pieces[Queen]) == 0

	case CastlingMove:
		return p.castlingPathSafe(from, to, them)
	}

	if from == ksq {
		return p.AttackersTo(to, p.Bits.Occupied&^SingleBitboard(from))&p.Bits.Players[them].Occupied == 0
	}

	if p.blockers[us]&SingleBitboard(from) == 0 {
		return true
	}
	return LineMasks[from][ksq]&SingleBitboard(to) != 0
}

// castlingPathSafe walks the king's path (start and landing included)
// checking for enemy attacks.
func (p *Position) castlingPathSafe(kingFrom int, rookSquare int, them Player) bool {
	kingTo, _ := CastlingLandingSquares(kingFrom, rookSquare)

	step := 1
	if kingTo < kingFrom {
		step = -1
	}

	occupied := p.Bits.Occupied &^ SingleBitboard(kingFrom)
	for s := kingFrom; ; s += step {
		if p.AttackersTo(s, occupied)&p.Bits.Players[them].Occupied != 0 {
			return false
		}
		if s == kingTo {
			break
		}
	}
	return true
}

func (p *Position) legalAtomic(m Move) bool {
	us := p.SideToMove
	them := us.Other()
	ksq := p.kingSquare[us]
	if ksq == NoSquare {
		return false
	}

	from := m.StartIndex()
	to := m.EndIndex()

	isCapture := m.Kind() == EnPassantMove ||
		p.Bits.Players[them].Occupied&SingleBitboard(to) != 0

	if isCapture {
		// The capturing piece always explodes, so the king can never
		// capture anything.
		if from == ksq {
			return false
		}

		bits := p.simulateOnBits(m)

		if bits.Players[us].Pieces[King] == 0 {
			return false
		}
		if bits.Players[them].Pieces[King] == 0 {
			// Exploding the enemy king decides the game immediately.
			return true
		}
		return attackersToSimulated(p.Rules, &bits, ksq)&bits.Players[them].Occupied == 0
	}

	if m.Kind() == CastlingMove {
		return p.castlingPathSafe(from, to, them)
	}

	if from == ksq {
		// Next to the enemy king there are no checks: both kings would
		// explode together, which the opponent can never play.
		if KingAttackMasks[to]&p.Bits.Players[them].Pieces[King] != 0 {
			return true
		}
		return p.AttackersTo(to, p.Bits.Occupied&^SingleBitboard(from))&p.Bits.Players[them].Occupied == 0
	}

	if KingAttackMasks[ksq]&p.Bits.Players[them].Pieces[King] != 0 {
		return true
	}
	if p.blockers[us]&SingleBitboard(from) == 0 {
		return true
	}
	return LineMasks[from][ksq]&SingleBitboard(to) != 0
}

// legalBySimulation plays the move on copied bit-sets and inspects the
// result. Grid and two-king rules bend the single-king fast paths too
// far for anything cheaper, and race additionally outlaws giving check.
func (p *Position) legalBySimulation(m Move) bool {
	us := p.SideToMove
	them := us.Other()

	if p.Rules.RegionBound() {
		// A grid move has to cross a region boundary.
		landing := m.EndIndex()
		if m.Kind() == CastlingMove {
			landing, _ = CastlingLandingSquares(m.StartIndex(), m.EndIndex())
		}
		if SameGridRegion(m.StartIndex(), landing) {
			return false
		}
	}

	if m.Kind() == CastlingMove && !p.castlingPathSafe(m.StartIndex(), m.EndIndex(), them) {
		return false
	}

	bits := p.simulateOnBits(m)

	kings := bits.Players[us].Pieces[King]
	for kings != 0 {
		var kingIndex int
		kingIndex, kings = kings.NextIndexOfOne()
		if attackersToSimulated(p.Rules, &bits, kingIndex)&bits.Players[them].Occupied != 0 {
			return false
		}
	}

	if p.Rules.RaceObjective() {
		enemyKings := bits.Players[them].Pieces[King]
		for enemyKings != 0 {
			var kingIndex int
			kingIndex, enemyKings = enemyKings.NextIndexOfOne()
			if attackersToSimulated(p.Rules, &bits, kingIndex)&bits.Players[us].Occupied != 0 {
				return false
			}
		}
	}

	return true
}

// simulateOnBits returns the piece bit-sets as they would look after m,
// including the blast under exploding rules.
func (p *Position) simulateOnBits(m Move) Bitboards {
	bits := p.Bits
	us := p.SideToMove
	them := us.Other()
	from := m.StartIndex()
	to := m.EndIndex()

	switch m.Kind() {
	case DropMove:
		bits.SetSquareForPlayer(to, us, m.DropPiece())
		return bits

	case CastlingMove:
		kingTo, rookTo := CastlingLandingSquares(from, to)
		bits.ClearSquareForPlayer(from, us, King)
		bits.ClearSquareForPlayer(to, us, Rook)
		bits.SetSquareForPlayer(kingTo, us, King)
		bits.SetSquareForPlayer(rookTo, us, Rook)
		return bits

	case EnPassantMove:
		capturedIndex := to - PawnPushOffsets[us]
		bits.ClearSquareForPlayer(capturedIndex, them, Pawn)
		bits.ClearSquareForPlayer(from, us, Pawn)
		bits.SetSquareForPlayer(to, us, Pawn)
		if p.Rules.ExplodesOnCapture() {
			explodeAround(&bits, to)
		}
		return bits
	}

	movedType := p.Board[from].PieceType()
	capturedPiece := p.Board[to]

	if capturedPiece != XX {
		bits.ClearSquareForPlayer(to, capturedPiece.Player(), capturedPiece.PieceType())
	}
	bits.ClearSquareForPlayer(from, us, movedType)

	if capturedPiece != XX && p.Rules.ExplodesOnCapture() {
		explodeAround(&bits, to)
		return bits
	}

	if m.Kind() == PromotionMove {
		bits.SetSquareForPlayer(to, us, m.PromotionPiece())
	} else {
		bits.SetSquareForPlayer(to, us, movedType)
	}
	return bits
}

// explodeAround removes every non-pawn piece adjacent to the capture
// square plus whatever still stands on it.
func explodeAround(bits *Bitboards, to int) {
	blast := (KingAttackMasks[to] | SingleBitboard(to))
	for _, player := range []Player{White, Black} {
		for pieceType := Rook; pieceType <= Queen; pieceType++ {
			bits.Players[player].Pieces[pieceType] &= ^blast
		}
		// Pawns only explode on the capture square itself.
		bits.Players[player].Pieces[Pawn] &= ^SingleBitboard(to)

		bits.Players[player].Occupied = bits.Players[player].Pieces[Rook] |
			bits.Players[player].Pieces[Knight] |
			bits.Players[player].Pieces[Bishop] |
			bits.Players[player].Pieces[King] |
			bits.Players[player].Pieces[Queen] |
			bits.Players[player].Pieces[Pawn]
	}
	bits.Occupied = bits.Players[White].Occupied | bits.Players[Black].Occupied
}

package position

import (
	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
)

// Position is a read-only snapshot of one board state under one rule
// configuration. Construct it via PositionFromFen or Apply; the derived
// fields (checkers, blockers, check squares) are computed once at
// construction and generation never mutates anything.
type Position struct {
	Rules Rules

	Board      BoardArray
	Bits       Bitboards
	SideToMove Player

	CastlingAllowed [2][2]bool
	CastlingRooks   [2][2]int // rook start squares, NoSquare when the right is gone
	CastlingKing    [2]int    // the king square castling moves start from
	EnPassantTarget Optional[FileRank]
	Hands           [2][6]int // reserve counts, indexed via PieceType
	Promoted        Bitboard  // pieces that began life as pawns
	HalfMoveClock   int
	FullMoveClock   int

	kingSquare   [2]int
	checkers     Bitboard
	blockers     [2]Bitboard
	pinners      [2]Bitboard
	checkSquares [6]Bitboard
	canCapture   bool
}

func (p *Position) Occupied() Bitboard {
	return p.Bits.Occupied
}

func (p *Position) OccupiedBy(player Player) Bitboard {
	return p.Bits.Players[player].Occupied
}

func (p *Position) Pieces(player Player, pieceType PieceType) Bitboard {
	return p.Bits.Players[player].Pieces[pieceType]
}

func (p *Position) piecesOfBothPlayers(pieceType PieceType) Bitboard {
	return p.Bits.Players[White].Pieces[pieceType] | p.Bits.Players[Black].Pieces[pieceType]
}

// KingSquare is the first king of player, or NoSquare. Multi-king
// variants iterate Pieces(player, King) instead.
func (p *Position) KingSquare(player Player) int {
	return p.kingSquare[player]
}

func (p *Position) Checkers() Bitboard {
	return p.checkers
}

func (p *Position) InCheck() bool {
	return p.checkers != 0
}

// BlockersForKing is the pieces (either color) that currently shield
// player's king from an enemy slider.
func (p *Position) BlockersForKing(player Player) Bitboard {
	return p.blockers[player]
}

func (p *Position) Pinners(player Player) Bitboard {
	return p.pinners[player]
}

// CheckSquares is the set of squares from which a side-to-move piece of
// the given type would check the enemy king.
func (p *Position) CheckSquares(pieceType PieceType) Bitboard {
	return p.checkSquares[pieceType]
}

func (p *Position) EnPassantIndex() int {
	if p.EnPassantTarget.IsEmpty() {
		return NoSquare
	}
	return IndexFromFileRank(p.EnPassantTarget.Value())
}

// CanCapture reports whether the side to move has a capture available,
// under forced-capture rules. Always false for other rule sets.
func (p *Position) CanCapture() bool {
	return p.canCapture
}

func (p *Position) HandCount(player Player, pieceType PieceType) int {
	return p.Hands[player][pieceType]
}

func (p *Position) TotalHandCount(player Player) int {
	total := 0
	for _, n := range p.Hands[player] {
		total += n
	}
	return total
}

func (p *Position) InPlacement() bool {
	return p.Rules.Placement && (p.TotalHandCount(White) > 0 || p.TotalHandCount(Black) > 0)
}

// PawnArmy reports whether player is the kingless pawn army.
func (p *Position) PawnArmy(player Player) bool {
	return p.Rules.Variant == VariantHorde && p.kingSquare[player] == NoSquare
}

// AttacksFrom is the attack set of a piece standing on from, given the
// current occupancy. Under grid rules a piece never attacks within its
// own region.
func (p *Position) AttacksFrom(pieceType PieceType, from int, player Player) Bitboard {
	var b Bitboard
	switch pieceType {
	case Pawn:
		b = PawnAttackMasks[player][from]
	case Knight:
		b = KnightAttackMasks[from]
	case Bishop:
		b = BishopAttacks(from, p.Bits.Occupied)
	case Rook:
		b = RookAttacks(from, p.Bits.Occupied)
	case Queen:
		b = QueenAttacks(from, p.Bits.Occupied)
	case King:
		b = KingAttackMasks[from]
	}
	if p.Rules.RegionBound() {
		b &= ^GridRegionMasks[from]
	}
	return b
}

// AttackersTo is every piece of both colors attacking index, computed
// against the given occupancy (which may differ from the position's to
// simulate a move).
func (p *Position) AttackersTo(index int, occupied Bitboard) Bitboard {
	b := (PawnAttackMasks[Black][index] & p.Bits.Players[White].Pieces[Pawn]) |
		(PawnAttackMasks[White][index] & p.Bits.Players[Black].Pieces[Pawn]) |
		(KnightAttackMasks[index] & p.piecesOfBothPlayers(Knight)) |
		(KingAttackMasks[index] & p.piecesOfBothPlayers(King)) |
		(RookAttacks(index, occupied) & (p.piecesOfBothPlayers(Rook) | p.piecesOfBothPlayers(Queen))) |
		(BishopAttacks(index, occupied) & (p.piecesOfBothPlayers(Bishop) | p.piecesOfBothPlayers(Queen)))
	if p.Rules.RegionBound() {
		b &= ^GridRegionMasks[index]
	}
	return b
}

// attackersToSimulated is AttackersTo against explicit piece sets, for
// legality checks that lift or move pieces first.
func attackersToSimulated(rules Rules, bits *Bitboards, index int) Bitboard {
	occupied := bits.Occupied
	b := (PawnAttackMasks[Black][index] & bits.Players[White].Pieces[Pawn]) |
		(PawnAttackMasks[White][index] & bits.Players[Black].Pieces[Pawn]) |
		(KnightAttackMasks[index] & (bits.Players[White].Pieces[Knight] | bits.Players[Black].Pieces[Knight])) |
		(KingAttackMasks[index] & (bits.Players[White].Pieces[King] | bits.Players[Black].Pieces[King])) |
		(RookAttacks(index, occupied) & (bits.Players[White].Pieces[Rook] | bits.Players[Black].Pieces[Rook] |
			bits.Players[White].Pieces[Queen] | bits.Players[Black].Pieces[Queen])) |
		(BishopAttacks(index, occupied) & (bits.Players[White].Pieces[Bishop] | bits.Players[Black].Pieces[Bishop] |
			bits.Players[White].Pieces[Queen] | bits.Players[Black].Pieces[Queen]))
	if rules.RegionBound() {
		b &= ^GridRegionMasks[index]
	}
	return b
}

func (p *Position) finish() {
	for _, player := range []Player{White, Black} {
		kings := p.Bits.Players[player].Pieces[King]
		if kings == 0 {
			p.kingSquare[player] = NoSquare
		} else {
			p.kingSquare[player] = kings.FirstIndexOfOne()
		}
	}

	p.computeBlockers(White)
	p.computeBlockers(Black)
	p.computeCheckers()
	p.computeCheckSquares()

	if p.Rules.ForcedCapture() {
		p.canCapture = p.computeCanCapture()
	}
}

func (p *Position) computeBlockers(player Player) {
	p.blockers[player] = 0
	p.pinners[player] = 0

	ksq := p.kingSquare[player]
	if ksq == NoSquare {
		return
	}

	enemy := p.Bits.Players[player.Other()]
	snipers := (PseudoRookAttacks[ksq] & (enemy.Pieces[Rook] | enemy.Pieces[Queen])) |
		(PseudoBishopAttacks[ksq] & (enemy.Pieces[Bishop] | enemy.Pieces[Queen]))
	if p.Rules.RegionBound() {
		snipers &= ^GridRegionMasks[ksq]
	}

	occupancy := p.Bits.Occupied ^ snipers

	for snipers != 0 {
		var sniperIndex int
		sniperIndex, snipers = snipers.NextIndexOfOne()

		between := BetweenMasks[ksq][sniperIndex] & occupancy
		if between != 0 && OnesCount(between) == 1 {
			p.blockers[player] |= between
			if between&p.Bits.Players[player].Occupied != 0 {
				p.pinners[player] |= SingleBitboard(sniperIndex)
			}
		}
	}
}

func (p *Position) computeCheckers() {
	p.checkers = 0
	if !p.Rules.CheckConcept() {
		return
	}

	us := p.SideToMove
	ksq := p.kingSquare[us]
	if ksq == NoSquare {
		return
	}

	// Adjacent kings can't check each other under blast rules: the
	// checking side would blow up its own king by capturing.
	if p.Rules.ExplodesOnCapture() &&
		KingAttackMasks[ksq]&p.Bits.Players[us.Other()].Pieces[King] != 0 {
		return
	}

	p.checkers = p.AttackersTo(ksq, p.Bits.Occupied) & p.Bits.Players[us.Other()].Occupied
}

func (p *Position) computeCheckSquares() {
	for i := range p.checkSquares {
		p.checkSquares[i] = 0
	}
	if !p.Rules.CheckConcept() {
		return
	}

	them := p.SideToMove.Other()
	eksq := p.kingSquare[them]
	if eksq == NoSquare {
		return
	}

	occupied := p.Bits.Occupied
	p.checkSquares[Pawn] = PawnAttackMasks[them][eksq]
	p.checkSquares[Knight] = KnightAttackMasks[eksq]
	p.checkSquares[Bishop] = BishopAttacks(eksq, occupied)
	p.checkSquares[Rook] = RookAttacks(eksq, occupied)
	p.checkSquares[Queen] = p.checkSquares[Bishop] | p.checkSquares[Rook]

	if p.Rules.RegionBound() {
		for i := range p.checkSquares {
			p.checkSquares[i] &= ^GridRegionMasks[eksq]
		}
	}
}

func (p *Position) computeCanCapture() bool {
	us := p.SideToMove
	enemies := p.Bits.Players[us.Other()].Occupied
	royalKing := p.Rules.Variant == VariantLosers

	for _, pieceType := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
		pieces := p.Bits.Players[us].Pieces[pieceType]
		for pieces != 0 {
			var from int
			from, pieces = pieces.NextIndexOfOne()

			attacks := p.AttacksFrom(pieceType, from, us) & enemies
			if attacks == 0 {
				continue
			}
			if !royalKing {
				return true
			}
			// With a royal king, a capture only counts if it is
			// actually playable under pin and check rules.
			for attacks != 0 {
				var to int
				to, attacks = attacks.NextIndexOfOne()
				if p.Legal(NewMove(from, to)) {
					return true
				}
			}
		}
	}

	epIndex := p.EnPassantIndex()
	if epIndex != NoSquare {
		attackers := p.Bits.Players[us].Pieces[Pawn] & PawnAttackMasks[us.Other()][epIndex]
		for attackers != 0 {
			var from int
			from, attackers = attackers.NextIndexOfOne()
			if !royalKing || p.Legal(NewEnPassantMove(from, epIndex)) {
				return true
			}
		}
	}

	return false
}

// VariantEnded reports a decided outcome readable from the snapshot
// alone (an exploded or captured king, a finished race, an annihilated
// side). Legal-move generation returns nothing once this is true.
func (p *Position) VariantEnded() bool {
	us := p.SideToMove
	them := us.Other()

	switch p.Rules.Variant {
	case VariantSuicide, VariantLosers:
		return p.Bits.Players[us].Occupied == 0 || p.Bits.Players[them].Occupied == 0
	case VariantAtomic:
		return p.kingSquare[us] == NoSquare || p.kingSquare[them] == NoSquare
	case VariantRace:
		return (p.piecesOfBothPlayers(King) & RankMasks[7]) != 0
	case VariantExtinction:
		// Full extinction bookkeeping needs the game history; a missing
		// king is the outcome readable from the snapshot.
		return p.kingSquare[us] == NoSquare || p.kingSquare[them] == NoSquare
	case VariantHorde:
		for _, player := range []Player{White, Black} {
			if p.Bits.Players[player].Occupied == 0 {
				return true
			}
		}
		return false
	default:
		if p.kingSquare[us] == NoSquare && p.HandCount(us, King) == 0 {
			return true
		}
		return p.kingSquare[them] == NoSquare && p.HandCount(them, King) == 0
	}
}

func (p *Position) String() string {
	return p.Board.String()
}

package position

import (
	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
)

func (p *Position) clearSquare(index int) {
	piece := p.Board[index]
	if piece == XX {
		return
	}
	p.Board[index] = XX
	p.Bits.ClearSquareForPlayer(index, piece.Player(), piece.PieceType())
	p.Promoted &= ^SingleBitboard(index)
}

func (p *Position) setSquare(index int, piece Piece) {
	p.Board[index] = piece
	p.Bits.SetSquareForPlayer(index, piece.Player(), piece.PieceType())
}

// capturedToHand credits a captured piece to the capturer's reserve,
// demoting promoted pieces back to pawns.
func (p *Position) capturedToHand(capturer Player, index int, piece Piece) {
	if !p.Rules.AllowsDrops() {
		return
	}
	pieceType := piece.PieceType()
	if p.Promoted&SingleBitboard(index) != 0 {
		pieceType = Pawn
	}
	p.Hands[capturer][pieceType]++
}

func (p *Position) explodeBoardAround(to int) {
	blast := KingAttackMasks[to]
	for blast != 0 {
		var index int
		index, blast = blast.NextIndexOfOne()
		if p.Board[index] != XX && p.Board[index].PieceType() != Pawn {
			p.clearSquare(index)
		}
	}
	p.clearSquare(to)
}

func (p *Position) updateCastlingRightsFor(moveBitboard Bitboard) {
	for _, player := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			if !p.CastlingAllowed[player][side] {
				continue
			}
			touched := SingleBitboard(p.CastlingRooks[player][side])
			if p.CastlingKing[player] != NoSquare {
				touched |= SingleBitboard(p.CastlingKing[player])
			}
			if moveBitboard&touched != 0 {
				p.CastlingAllowed[player][side] = false
				p.CastlingRooks[player][side] = NoSquare
			}
		}
	}
}

// Apply plays a move and returns the resulting snapshot. The receiver
// is never modified; perft and the server walk the tree through here.
func (p *Position) Apply(m Move) (*Position, Error) {
	next := *p
	next.EnPassantTarget = Empty[FileRank]()
	next.HalfMoveClock = p.HalfMoveClock + 1

	us := p.SideToMove
	them := us.Other()
	from := m.StartIndex()
	to := m.EndIndex()

	switch m.Kind() {
	case DropMove:
		pieceType := m.DropPiece()
		if next.Hands[us][pieceType] == 0 {
			return nil, Errorf("drop %v with empty reserve", m.String())
		}
		if next.Board[to] != XX {
			return nil, Errorf("drop %v onto occupied square", m.String())
		}
		next.Hands[us][pieceType]--
		next.setSquare(to, PieceForPlayer[us][pieceType])

	case CastlingMove:
		kingTo, rookTo := CastlingLandingSquares(from, to)
		king := next.Board[from]
		rook := next.Board[to]
		if king.PieceType() != King || rook.PieceType() != Rook {
			return nil, Errorf("castling %v without king and rook", m.String())
		}
		next.clearSquare(from)
		next.clearSquare(to)
		next.setSquare(kingTo, king)
		next.setSquare(rookTo, rook)
		next.CastlingAllowed[us] = [2]bool{}
		next.CastlingRooks[us] = [2]int{NoSquare, NoSquare}

	case EnPassantMove:
		capturedIndex := to - PawnPushOffsets[us]
		capturedPawn := next.Board[capturedIndex]
		if capturedPawn.PieceType() != Pawn {
			return nil, Errorf("en passant %v without captured pawn", m.String())
		}
		next.clearSquare(capturedIndex)
		next.capturedToHand(us, capturedIndex, capturedPawn)
		pawn := next.Board[from]
		next.clearSquare(from)
		if p.Rules.ExplodesOnCapture() {
			next.explodeBoardAround(to)
		} else {
			next.setSquare(to, pawn)
		}
		next.HalfMoveClock = 0

	default:
		movedPiece := next.Board[from]
		if movedPiece == XX || movedPiece.Player() != us {
			return nil, Errorf("move %v from empty or enemy square", m.String())
		}
		capturedPiece := next.Board[to]
		wasPromoted := next.Promoted&SingleBitboard(from) != 0

		if capturedPiece != XX {
			next.capturedToHand(us, to, capturedPiece)
			next.clearSquare(to)
			next.HalfMoveClock = 0
		}
		next.clearSquare(from)

		if capturedPiece != XX && p.Rules.ExplodesOnCapture() {
			next.explodeBoardAround(to)
		} else if m.Kind() == PromotionMove {
			next.setSquare(to, PieceForPlayer[us][m.PromotionPiece()])
			next.Promoted |= SingleBitboard(to)
		} else {
			next.setSquare(to, movedPiece)
			if wasPromoted {
				next.Promoted |= SingleBitboard(to)
			}
		}

		if movedPiece.PieceType() == Pawn {
			next.HalfMoveClock = 0
			if AbsDiff(from, to) == OffsetN+OffsetN {
				next.EnPassantTarget = Some(FileRankFromIndex((from + to) / 2))
			}
		}
	}

	if m.Kind() != DropMove {
		next.updateCastlingRightsFor(SingleBitboard(from) | SingleBitboard(to))
	}

	if us == Black {
		next.FullMoveClock = p.FullMoveClock + 1
	}
	next.SideToMove = them

	next.finish()
	return &next, NilError
}

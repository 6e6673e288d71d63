package helpers

import (
	"strings"
)

// Move packs a full move description into a single word so move buffers
// stay flat arrays of uint32.
//
//	bits 0-5   start square
//	bits 6-11  end square
//	bits 12-14 move kind
//	bits 15-17 piece type payload (promotion target, or dropped piece)
//
// Castling stores the king's start square and the castling rook's square,
// which keeps the encoding unambiguous even when the king only moves one
// square (or none). Drops store the destination in both square fields.
type Move uint32

type MoveKind uint32

const (
	NormalMove MoveKind = iota
	PromotionMove
	EnPassantMove
	CastlingMove
	DropMove
)

var _moveKindStrings = [5]string{
	"normal", "promotion", "en-passant", "castling", "drop",
}

func (k MoveKind) String() string {
	return _moveKindStrings[k]
}

func newMove(start int, end int, kind MoveKind, payload PieceType) Move {
	return Move(uint32(start) | uint32(end)<<6 | uint32(kind)<<12 | uint32(payload)<<15)
}

func NewMove(start int, end int) Move {
	return newMove(start, end, NormalMove, InvalidPiece)
}

func NewPromotionMove(start int, end int, promotion PieceType) Move {
	return newMove(start, end, PromotionMove, promotion)
}

func NewEnPassantMove(start int, end int) Move {
	return newMove(start, end, EnPassantMove, InvalidPiece)
}

func NewCastlingMove(kingIndex int, rookIndex int) Move {
	return newMove(kingIndex, rookIndex, CastlingMove, InvalidPiece)
}

func NewDropMove(pieceType PieceType, end int) Move {
	return newMove(end, end, DropMove, pieceType)
}

func (m Move) StartIndex() int {
	return int(m & 0b111111)
}

func (m Move) EndIndex() int {
	return int((m >> 6) & 0b111111)
}

func (m Move) Kind() MoveKind {
	return MoveKind((m >> 12) & 0b111)
}

func (m Move) PromotionPiece() PieceType {
	return PieceType((m >> 15) & 0b111)
}

func (m Move) DropPiece() PieceType {
	return PieceType((m >> 15) & 0b111)
}

func (m Move) String() string {
	switch m.Kind() {
	case DropMove:
		return strings.ToUpper(m.DropPiece().String()) + "@" + StringFromBoardIndex(m.EndIndex())
	case PromotionMove:
		return StringFromBoardIndex(m.StartIndex()) + StringFromBoardIndex(m.EndIndex()) + m.PromotionPiece().String()
	default:
		return StringFromBoardIndex(m.StartIndex()) + StringFromBoardIndex(m.EndIndex())
	}
}

func (m Move) DebugString() string {
	return m.String() + " (" + m.Kind().String() + ")"
}

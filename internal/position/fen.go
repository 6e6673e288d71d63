package position

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/varchess/varchess/internal/bitboards"
	. "github.com/varchess/varchess/internal/helpers"
)

var fenStringForCastling = [2][2]string{
	{"K", "Q"},
	{"k", "q"},
}

func fenStringForCastlingAllowed(castlingAllowed [2][2]bool) string {
	s := ""
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if castlingAllowed[i][j] {
				s += fenStringForCastling[i][j]
			}
		}
	}
	if len(s) == 0 {
		s += "-"
	}
	return s
}

func fenStringForEnPassant(enPassant Optional[FileRank]) string {
	if enPassant.IsEmpty() {
		return "-"
	}
	return enPassant.Value().String()
}

func (p *Position) fenStringForBoard() string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			index := IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})
			piece := p.Board[index]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += piece.String()
			if p.Promoted&SingleBitboard(index) != 0 {
				s += "~"
			}
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if rank != 0 {
			s += "/"
		}
	}

	if p.Rules.AllowsDrops() {
		hand := ""
		for _, player := range []Player{White, Black} {
			for _, pieceType := range []PieceType{Queen, Rook, Bishop, Knight, Pawn, King} {
				for i := 0; i < p.Hands[player][pieceType]; i++ {
					hand += PieceForPlayer[player][pieceType].String()
				}
			}
		}
		s += "[" + hand + "]"
	}

	return s
}

func (p *Position) Fen() string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		p.fenStringForBoard(),
		func() string {
			if p.SideToMove == White {
				return "w"
			}
			return "b"
		}(),
		fenStringForCastlingAllowed(p.CastlingAllowed),
		fenStringForEnPassant(p.EnPassantTarget),
		p.HalfMoveClock,
		p.FullMoveClock)
}

func parseBoardString(p *Position, boardStr string) Error {
	// Reserve pieces ride along in brackets after the board field.
	if open := strings.IndexByte(boardStr, '['); open >= 0 {
		if !strings.HasSuffix(boardStr, "]") {
			return Errorf("unterminated hand in '%v'", boardStr)
		}
		for _, c := range boardStr[open+1 : len(boardStr)-1] {
			piece, err := PieceFromString(c)
			if !IsNil(err) {
				return err
			}
			p.Hands[piece.Player()][piece.PieceType()]++
		}
		boardStr = boardStr[:open]
	}

	var rankIndex Rank = 7
	var fileIndex File = 0
	lastIndex := NoSquare
	for _, c := range boardStr {
		if c == '/' {
			if fileIndex != 8 {
				return Errorf("not enough squares in rank, '%v'", boardStr)
			}
			rankIndex--
			fileIndex = 0
		} else if c == '~' {
			if lastIndex == NoSquare {
				return Errorf("dangling promotion marker in '%v'", boardStr)
			}
			p.Promoted |= SingleBitboard(lastIndex)
		} else if indicesToSkip, err := strconv.ParseInt(string(c), 10, 0); err == nil {
			fileIndex += File(indicesToSkip)
			lastIndex = NoSquare
		} else if piece, err := PieceFromString(c); IsNil(err) {
			index := IndexFromFileRank(FileRank{File: fileIndex, Rank: rankIndex})
			p.Board[index] = piece
			lastIndex = index
			fileIndex++
		} else {
			return Errorf("unknown character '%v' in '%v'", c, boardStr)
		}
	}
	return NilError
}

func (p *Position) setCastlingRight(player Player, side CastlingSide) {
	backRank := Rank(0)
	if player == Black {
		backRank = 7
	}

	rookFile := File(7)
	if side == Queenside {
		rookFile = File(0)
	}
	rookIndex := IndexFromFileRank(FileRank{File: rookFile, Rank: backRank})
	kingIndex := IndexFromFileRank(FileRank{File: File(4), Rank: backRank})

	if p.Board[rookIndex] != PieceForPlayer[player][Rook] ||
		p.Board[kingIndex] != PieceForPlayer[player][King] {
		return
	}

	p.CastlingAllowed[player][side] = true
	p.CastlingRooks[player][side] = rookIndex
	p.CastlingKing[player] = kingIndex
}

func PositionFromFen(fen string, rules Rules) (*Position, Error) {
	ss := strings.Fields(fen)
	if len(ss) != 6 {
		return nil, Errorf("wrong num %v of fields in fen '%v'", len(ss), fen)
	}

	p := &Position{Rules: rules}
	p.CastlingKing = [2]int{NoSquare, NoSquare}
	p.CastlingRooks = [2][2]int{{NoSquare, NoSquare}, {NoSquare, NoSquare}}

	boardStr, playerStr, castlingStr, enPassantStr, halfMoveStr, fullMoveStr := ss[0], ss[1], ss[2], ss[3], ss[4], ss[5]

	err := parseBoardString(p, boardStr)
	if !IsNil(err) {
		return nil, err
	}

	player, err := PlayerFromString(playerStr)
	if !IsNil(err) {
		return nil, Errorf("invalid player '%v' in '%v'", playerStr, fen)
	}
	p.SideToMove = player

	for _, c := range castlingStr {
		switch c {
		case '-':
			continue
		case 'K':
			p.setCastlingRight(White, Kingside)
		case 'Q':
			p.setCastlingRight(White, Queenside)
		case 'k':
			p.setCastlingRight(Black, Kingside)
		case 'q':
			p.setCastlingRight(Black, Queenside)
		default:
			return nil, Errorf("invalid castling rights '%v' in '%v'", castlingStr, fen)
		}
	}

	if enPassantStr == "-" {
		p.EnPassantTarget = Empty[FileRank]()
	} else if enPassantTarget, err := FileRankFromString(enPassantStr); IsNil(err) {
		p.EnPassantTarget = Some(enPassantTarget)
	} else {
		return nil, Errorf("invalid en-passant target '%v' in '%v'", enPassantStr, fen)
	}

	if halfMoveClock, err := strconv.ParseInt(halfMoveStr, 10, 0); err == nil {
		p.HalfMoveClock = int(halfMoveClock)
	} else {
		return nil, Errorf("invalid half move clock '%v' in '%v'", halfMoveStr, fen)
	}

	if fullMoveClock, err := strconv.ParseInt(fullMoveStr, 10, 0); err == nil {
		p.FullMoveClock = int(fullMoveClock)
	} else {
		return nil, Errorf("invalid full move clock '%v' in '%v'", fullMoveStr, fen)
	}

	for i, piece := range p.Board {
		if piece != XX {
			p.Bits.SetSquare(i, piece)
		}
	}

	p.finish()
	return p, NilError
}

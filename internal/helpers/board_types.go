package helpers

import (
	"github.com/muesli/termenv"
)

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

// NoSquare is the sentinel for "no board square here" (no en-passant
// target, no king on the board, ...).
const NoSquare int = -1

type Piece uint

const (
	XX Piece = iota
	WR
	WN
	WB
	WK
	WQ
	WP
	BR
	BN
	BB
	BK
	BQ
	BP
)

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
	InvalidPiece
)

func (p PieceType) String() string {
	return [8]string{
		"r", "n", "b", "k", "q", "p", "?",
	}[p]
}

func PieceTypeFromString(s string) PieceType {
	switch s {
	case "r":
		return Rook
	case "n":
		return Knight
	case "b":
		return Bishop
	case "k":
		return King
	case "q":
		return Queen
	case "p":
		return Pawn
	default:
		return InvalidPiece
	}
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c - '1')
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %v", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c - 'a')
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %v", c)
	}
	return File(file), NilError
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Errorf("invalid location %v with errors %w, %w", s, fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b":
		return Black, NilError
	case "w":
		return White, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

var PieceTypeLookup [16]PieceType = func() [16]PieceType {
	result := [16]PieceType{}
	result[XX] = InvalidPiece
	result[WR] = Rook
	result[WN] = Knight
	result[WB] = Bishop
	result[WK] = King
	result[WQ] = Queen
	result[WP] = Pawn
	result[BR] = Rook
	result[BN] = Knight
	result[BB] = Bishop
	result[BK] = King
	result[BQ] = Queen
	result[BP] = Pawn
	return result
}()

func (p Piece) PieceType() PieceType {
	return PieceTypeLookup[p]
}

func (p PieceType) IsValid() bool {
	return p >= Rook && p <= Pawn
}

func (p Piece) Player() Player {
	if p < BR {
		return White
	}
	return Black
}

var PieceForPlayer [2][8]Piece = func() [2][8]Piece {
	result := [2][8]Piece{}

	result[White][Rook] = WR
	result[White][Knight] = WN
	result[White][Bishop] = WB
	result[White][King] = WK
	result[White][Queen] = WQ
	result[White][Pawn] = WP

	result[Black][Rook] = BR
	result[Black][Knight] = BN
	result[Black][Bishop] = BB
	result[Black][King] = BK
	result[Black][Queen] = BQ
	result[Black][Pawn] = BP

	return result
}()

func PieceFromString(c rune) (Piece, Error) {
	switch c {
	case 'R':
		return WR, NilError
	case 'N':
		return WN, NilError
	case 'B':
		return WB, NilError
	case 'K':
		return WK, NilError
	case 'Q':
		return WQ, NilError
	case 'P':
		return WP, NilError
	case 'r':
		return BR, NilError
	case 'n':
		return BN, NilError
	case 'b':
		return BB, NilError
	case 'k':
		return BK, NilError
	case 'q':
		return BQ, NilError
	case 'p':
		return BP, NilError
	default:
		return XX, Errorf("invalid piece %v", c)
	}
}

func (p Piece) String() string {
	return []string{
		" ",
		"R",
		"N",
		"B",
		"K",
		"Q",
		"P",
		"r",
		"n",
		"b",
		"k",
		"q",
		"p",
	}[p]
}

func (p Piece) Unicode() string {
	return []string{
		" ",
		"♖",
		"♘",
		"♗",
		"♔",
		"♕",
		"♙",
		"♜",
		"♞",
		"♝",
		"♚",
		"♛",
		"♟",
	}[p]
}

func (p PieceType) Unicode() string {
	return []string{
		"♜",
		"♞",
		"♝",
		"♚",
		"♛",
		"♟",
		" ",
	}[p]
}

func (p Piece) IsWhite() bool {
	return p <= WP && p >= WR
}

func (p Piece) IsBlack() bool {
	return p <= BP && p >= BR
}

type BoardArray [64]Piece

var _hintStyle = termenv.Style{}.Foreground(termenv.ANSI256Color(244))
var _squareStyles = [2]termenv.Style{
	termenv.Style{}.Background(termenv.ANSI256Color(244)),
	termenv.Style{}.Background(termenv.ANSI256Color(243)),
}
var _whitePieceColor = termenv.ANSI256Color(255)
var _blackPieceColor = termenv.ANSI256Color(232)

func (b BoardArray) String() string {
	result := ""
	for rank := 7; rank >= 0; rank-- {
		row := b[rank*8 : (rank+1)*8]
		for _, p := range row {
			result += p.String()
		}
		if rank != 0 {
			result += "\n"
		}
	}
	return result
}

func (b BoardArray) Unicode() string {
	result := "  "
	for file := 0; file < 8; file++ {
		result += _hintStyle.Styled(" " + File(file).String() + " ")
	}
	result += "\n"

	for rank := 7; rank >= 0; rank-- {
		result += _hintStyle.Styled(Rank(rank).String() + " ")
		for file := 0; file < 8; file++ {
			squareColor := (file%2 + rank%2) % 2
			piece := PieceAtFileRank(b, FileRank{File(file), Rank(rank)})

			style := _squareStyles[squareColor]
			if piece.IsWhite() {
				style = style.Foreground(_whitePieceColor)
			} else {
				style = style.Foreground(_blackPieceColor)
			}

			result += style.Styled(" " + piece.PieceType().Unicode() + " ")
		}
		result += "\n"
	}

	return result
}

func PieceAtFileRank(board BoardArray, location FileRank) Piece {
	return board[IndexFromFileRank(location)]
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func BoardIndexFromString(s string) int {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return IndexFromFileRank(location)
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

var AllCastlingSides = [2]CastlingSide{Kingside, Queenside}

package bitboards

import (
	. "github.com/varchess/varchess/internal/helpers"
)

var RankMasks [8]Bitboard = func() [8]Bitboard {
	result := [8]Bitboard{}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			result[r] |= SingleBitboard(IndexFromFileRank(FileRank{File: File(f), Rank: Rank(r)}))
		}
	}
	return result
}()

var FileMasks [8]Bitboard = func() [8]Bitboard {
	result := [8]Bitboard{}
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			result[f] |= SingleBitboard(IndexFromFileRank(FileRank{File: File(f), Rank: Rank(r)}))
		}
	}
	return result
}()

var DarkSquares Bitboard = func() Bitboard {
	result := Bitboard(0)
	for i := 0; i < 64; i++ {
		fr := FileRankFromIndex(i)
		if (int(fr.File)+int(fr.Rank))%2 == 0 {
			result |= SingleBitboard(i)
		}
	}
	return result
}()

// Slider attacks on an empty board. These exist alongside the magic
// tables because line/between masks and check detection want the
// unobstructed rays.
var PseudoRookAttacks [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		for _, dir := range RookDirs {
			result[i] = generateWalkBitboard(SingleBitboard(i), Bitboard(0), dir, result[i])
		}
	}
	return result
}()

var PseudoBishopAttacks [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		for _, dir := range BishopDirs {
			result[i] = generateWalkBitboard(SingleBitboard(i), Bitboard(0), dir, result[i])
		}
	}
	return result
}()

var PseudoQueenAttacks [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = PseudoRookAttacks[i] | PseudoBishopAttacks[i]
	}
	return result
}()

// LineMasks[a][b] is the full rank, file or diagonal through a and b
// (including both), or 0 if they aren't aligned.
var LineMasks [64][64]Bitboard = func() [64][64]Bitboard {
	result := [64][64]Bitboard{}
	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			if a == b {
				continue
			}
			if PseudoRookAttacks[a]&SingleBitboard(b) != 0 {
				result[a][b] = (PseudoRookAttacks[a] & PseudoRookAttacks[b]) | SingleBitboard(a) | SingleBitboard(b)
			} else if PseudoBishopAttacks[a]&SingleBitboard(b) != 0 {
				result[a][b] = (PseudoBishopAttacks[a] & PseudoBishopAttacks[b]) | SingleBitboard(a) | SingleBitboard(b)
			}
		}
	}
	return result
}()

// BetweenMasks[a][b] is the squares strictly between a and b, or 0 if
// they aren't aligned.
var BetweenMasks [64][64]Bitboard = func() [64][64]Bitboard {
	result := [64][64]Bitboard{}
	for a := 0; a < 64; a++ {
		for b := 0; b < 64; b++ {
			if a == b {
				continue
			}
			if PseudoRookAttacks[a]&SingleBitboard(b) != 0 {
				result[a][b] = RookAttacks(a, SingleBitboard(b)) & RookAttacks(b, SingleBitboard(a))
			} else if PseudoBishopAttacks[a]&SingleBitboard(b) != 0 {
				result[a][b] = BishopAttacks(a, SingleBitboard(b)) & BishopAttacks(b, SingleBitboard(a))
			}
		}
	}
	return result
}()

// ForwardSpanMasks[player][i] covers every square ahead of i (from
// player's perspective) on i's file and the adjacent files.
var ForwardSpanMasks [2][64]Bitboard = func() [2][64]Bitboard {
	result := [2][64]Bitboard{}
	for i := 0; i < 64; i++ {
		fr := FileRankFromIndex(i)
		files := FileMasks[fr.File]
		if fr.File > 0 {
			files |= FileMasks[fr.File-1]
		}
		if fr.File < 7 {
			files |= FileMasks[fr.File+1]
		}

		forWhite := Bitboard(0)
		forBlack := Bitboard(0)
		for r := int(fr.Rank) + 1; r < 8; r++ {
			forWhite |= RankMasks[r]
		}
		for r := int(fr.Rank) - 1; r >= 0; r-- {
			forBlack |= RankMasks[r]
		}

		result[White][i] = files & forWhite
		result[Black][i] = files & forBlack
	}
	return result
}()

// GridRegionMasks[i] is the 2x2 region containing square i.
var GridRegionMasks [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		fr := FileRankFromIndex(i)
		baseFile := int(fr.File) &^ 1
		baseRank := int(fr.Rank) &^ 1
		for df := 0; df < 2; df++ {
			for dr := 0; dr < 2; dr++ {
				result[i] |= SingleBitboard(IndexFromFileRank(FileRank{File: File(baseFile + df), Rank: Rank(baseRank + dr)}))
			}
		}
	}
	return result
}()

func SameGridRegion(a int, b int) bool {
	return GridRegionMasks[a]&SingleBitboard(b) != 0
}

// AdjacentSquares is every square adjacent to any square of b.
func AdjacentSquares(b Bitboard) Bitboard {
	result := Bitboard(0)
	for b != 0 {
		var index int
		index, b = b.NextIndexOfOne()
		result |= KingAttackMasks[index]
	}
	return result
}

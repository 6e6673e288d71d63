package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	. "github.com/varchess/varchess/internal/helpers"
	"github.com/varchess/varchess/internal/movegen"
	"github.com/varchess/varchess/internal/position"
)

func perft(pos *position.Position, depth int) (int, Error) {
	if depth == 0 {
		return 1, NilError
	}

	buffer := movegen.GetMovesBuffer()
	defer movegen.ReleaseMovesBuffer(buffer)

	moves := movegen.Generate(movegen.ModeLegal, pos, *buffer)
	if depth == 1 {
		return len(moves), NilError
	}

	total := 0
	for _, m := range moves {
		next, err := pos.Apply(m)
		if !IsNil(err) {
			return 0, err
		}
		count, err := perft(next, depth-1)
		if !IsNil(err) {
			return 0, err
		}
		total += count
	}
	return total, NilError
}

var startingFens = map[position.Variant]string{
	position.VariantStandard:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	position.VariantHorde:      "rnbqkbnr/pppppppp/8/1PP2PP1/PPPPPPPP/PPPPPPPP/PPPPPPPP/PPPPPPPP w kq - 0 1",
	position.VariantRace:       "8/8/8/8/8/8/krbnNBRK/qrbnNBRQ w - - 0 1",
	position.VariantCrazyhouse: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[] w KQkq - 0 1",
}

func startingFen(rules position.Rules) string {
	if fen, ok := startingFens[rules.Variant]; ok {
		return fen
	}
	return startingFens[position.VariantStandard]
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
		}
	}()

	args := os.Args[1:]

	if Contains(args, "profile") {
		profilePath := RootDir() + "/data/CmdPerftMain"
		p := profile.Start(profile.ProfilePath(profilePath))
		defer p.Stop()
	}
	args = FilterSlice(args, func(arg string) bool {
		return arg != "profile"
	})

	rules := position.RulesForVariant(position.VariantStandard)
	depth := 5
	fenParts := []string{}

	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 0); err == nil && len(fenParts) == 0 {
			depth = int(parsed)
		} else if parsed, err := position.RulesFromName(arg); IsNil(err) && len(fenParts) == 0 {
			rules = parsed
		} else {
			fenParts = append(fenParts, arg)
		}
	}

	fen := startingFen(rules)
	if len(fenParts) > 0 {
		fen = strings.Join(fenParts, " ")
	}

	pos, err := position.PositionFromFen(fen, rules)
	if !IsNil(err) {
		panic(err)
	}

	fmt.Println(pos.Board.Unicode())
	fmt.Println(fen)

	moves := movegen.Generate(movegen.ModeLegal, pos, nil)
	bar := CreateProgressBar(len(moves), fmt.Sprintf("perft %v", depth))

	start := time.Now()
	total := 0
	counts := map[string]int{}
	for i, m := range moves {
		next, applyErr := pos.Apply(m)
		if !IsNil(applyErr) {
			panic(applyErr)
		}
		count, perftErr := perft(next, depth-1)
		if !IsNil(perftErr) {
			panic(perftErr)
		}
		counts[m.String()] = count
		total += count
		bar.Set(i + 1)
	}
	bar.Close()
	elapsed := time.Since(start)

	for _, m := range moves {
		fmt.Printf("%v: %v\n", m.String(), humanize.Comma(int64(counts[m.String()])))
	}
	fmt.Printf("\nnodes: %v in %v (%v / sec)\n",
		humanize.Comma(int64(total)),
		elapsed,
		humanize.Comma(int64(float64(total)/elapsed.Seconds())))
}

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	. "github.com/varchess/varchess/internal/helpers"
	"github.com/varchess/varchess/internal/movegen"
	"github.com/varchess/varchess/internal/position"
)

type UpdateToWeb struct {
	FenString     string   `json:"fenString"`
	LastMove      string   `json:"lastMove"`
	Selection     string   `json:"selection"`
	PossibleMoves []string `json:"possibleMoves"`
	Player        string   `json:"player"`
	InCheck       bool     `json:"inCheck"`
	GameOver      bool     `json:"gameOver"`
}

func (u UpdateToWeb) String() string {
	return fmt.Sprint("UpdateToWeb: ", u.FenString, ", ", u.LastMove, ", ", u.Selection, ", ", u.PossibleMoves)
}

type MessageFromWeb struct {
	Variant   *string `json:"variant"`
	NewFen    *string `json:"newFen"`
	Selection *string `json:"selection"`
	Move      *string `json:"move"`
	Rewind    *int    `json:"rewind"`
}

func (u MessageFromWeb) String() string {
	if u.Variant != nil {
		return fmt.Sprint("MessageFromWeb Variant: ", *u.Variant)
	}
	if u.NewFen != nil {
		return fmt.Sprint("MessageFromWeb NewFen: ", *u.NewFen)
	}
	if u.Selection != nil {
		return fmt.Sprint("MessageFromWeb Selection: ", *u.Selection)
	}
	if u.Move != nil {
		return fmt.Sprint("MessageFromWeb Move: ", *u.Move)
	}
	if u.Rewind != nil {
		return fmt.Sprint("MessageFromWeb Rewind: ", *u.Rewind)
	}
	return "MessageFromWeb unknown"
}

type LogForwarding struct {
	writeCallback func(message string)
}

func (l *LogForwarding) Println(v ...any) {
	l.writeCallback(fmt.Sprintln(v...))
}
func (l *LogForwarding) Printf(format string, v ...any) {
	l.writeCallback(fmt.Sprintf(format, v...))
}
func (l *LogForwarding) Print(v ...any) {
	l.writeCallback(fmt.Sprint(v...))
}

// game tracks one websocket session: the rule set, the current position
// and enough history to rewind.
type game struct {
	rules     position.Rules
	history   []*position.Position
	moveNames []string
}

func newGame(rules position.Rules, fen string) (*game, Error) {
	pos, err := position.PositionFromFen(fen, rules)
	if !IsNil(err) {
		return nil, err
	}
	return &game{rules: rules, history: []*position.Position{pos}}, NilError
}

func (g *game) current() *position.Position {
	return g.history[len(g.history)-1]
}

func (g *game) legalMoves() []Move {
	return movegen.Generate(movegen.ModeLegal, g.current(), nil)
}

// movesForSelection lists the legal moves starting at a selected board
// square, or the legal drops of a selected reserve piece ("N@").
func (g *game) movesForSelection(selection string) []string {
	result := []string{}
	for _, m := range g.legalMoves() {
		if strings.HasSuffix(selection, "@") {
			if m.Kind() == DropMove && strings.HasPrefix(m.String(), selection) {
				result = append(result, m.String())
			}
		} else if m.Kind() != DropMove &&
			m.StartIndex() == BoardIndexFromString(selection) {
			result = append(result, m.String())
		}
	}
	return result
}

func (g *game) performMove(moveStr string) Error {
	for _, m := range g.legalMoves() {
		if m.String() != moveStr {
			continue
		}
		next, err := g.current().Apply(m)
		if !IsNil(err) {
			return err
		}
		g.history = append(g.history, next)
		g.moveNames = append(g.moveNames, moveStr)
		return NilError
	}
	return Errorf("move %v is not legal", moveStr)
}

func (g *game) rewind(n int) Error {
	if n < 0 || n >= len(g.history) {
		return Errorf("cannot rewind %v of %v positions", n, len(g.history))
	}
	g.history = g.history[:len(g.history)-n]
	g.moveNames = g.moveNames[:len(g.moveNames)-n]
	return NilError
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	var upgrader = websocket.Upgrader{}

	var ws = func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if !IsNil(err) {
			panic(err)
		}

		logger := &LogForwarding{
			writeCallback: func(message string) {
				log.Print("server: ", message)
			},
		}

		rules := position.RulesForVariant(position.VariantStandard)
		g, gameErr := newGame(rules, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
		if !IsNil(gameErr) {
			panic(gameErr)
		}

		var finalizeUpdate = func(update UpdateToWeb) {
			pos := g.current()
			update.FenString = pos.Fen()
			if pos.SideToMove == White {
				update.Player = "white"
			} else {
				update.Player = "black"
			}
			if len(g.moveNames) > 0 {
				update.LastMove = g.moveNames[len(g.moveNames)-1]
			}
			update.InCheck = pos.InCheck()
			update.GameOver = pos.VariantEnded() || len(g.legalMoves()) == 0

			logger.Println("sending", update)
			bytes, err := json.Marshal(update)
			if !IsNil(err) {
				logger.Println("update: json marshal: ", err)
			}
			err = Wrap(c.WriteMessage(websocket.TextMessage, bytes))
			if !IsNil(err) {
				logger.Println("websocket: ", err)
			}
		}

		var handleMessageFromWeb = func(bytes []byte) {
			var message MessageFromWeb
			err := Wrap(json.Unmarshal(bytes, &message))
			if !IsNil(err) {
				logger.Println("handleMessageFromWeb: json unmarshal: ", err)
				return
			}
			logger.Println("received", message)

			var update UpdateToWeb

			if message.Variant != nil {
				parsed, err := position.RulesFromName(*message.Variant)
				if !IsNil(err) {
					logger.Println("variant: ", err)
					return
				}
				rules = parsed
			} else if message.NewFen != nil {
				next, err := newGame(rules, *message.NewFen)
				if !IsNil(err) {
					logger.Println("setup: ", err)
					return
				}
				g = next
			} else if message.Selection != nil {
				if *message.Selection != "" {
					update.Selection = *message.Selection
					update.PossibleMoves = g.movesForSelection(*message.Selection)
				}
			} else if message.Move != nil {
				err := g.performMove(*message.Move)
				if !IsNil(err) {
					logger.Println("perform: ", *message.Move, err)
				}
			} else if message.Rewind != nil {
				err := g.rewind(*message.Rewind)
				if !IsNil(err) {
					logger.Println("rewind: ", *message.Rewind, err)
				}
			}

			finalizeUpdate(update)
		}

		defer c.Close()
		for {
			_, message, err := c.ReadMessage()
			if !IsNil(err) {
				logger.Printf("Error: %v", err)
				break
			} else {
				handleMessageFromWeb(message)
			}
		}
	}

	var index = func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, RootDir()+"/static/index.html")
	}

	port := 8002

	args := os.Args[1:]
	for _, arg := range args {
		if parsed, err := strconv.ParseInt(arg, 10, 64); err == nil {
			port = int(parsed)
		}
	}

	log.Println("serving at", port)

	router := mux.NewRouter()
	router.HandleFunc("/ws", ws)
	router.PathPrefix("/static").Handler(
		http.StripPrefix("/static", http.FileServer(http.Dir(RootDir()+"/static"))))
	router.PathPrefix("/{variant}").HandlerFunc(index)
	router.HandleFunc("/", index)
	http.Handle("/", router)
	err := Wrap(http.ListenAndServe(fmt.Sprintf(":%v", port), router))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

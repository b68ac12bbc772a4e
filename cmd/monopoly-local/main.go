package main

import (
	"errors"
	"log"
	"math/rand"
	"os"

	"github.com/TomBebb/Monopoly/boardgen"
	"github.com/TomBebb/Monopoly/cryptorand"
	"github.com/TomBebb/Monopoly/dice"
	"github.com/TomBebb/Monopoly/game"
	"github.com/TomBebb/Monopoly/io"
	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/namsral/flag"
)

func main() {
	var (
		maxTurns   = flag.Int("max_turns", 0, "End the game after this many turns, zero plays forever")
		layoutFile = flag.String("layout", "", "A JSON board layout, the standard London board is used if blank")
		seed       = flag.Int64("seed", 0, "Seed for the dice, zero uses crypto/rand")
		noPause    = flag.Bool("no_pause", false, "Don't wait for ENTER between turns")
	)
	flag.Parse()

	var layout *boardgen.Layout
	if *layoutFile != "" {
		l, err := boardgen.LoadFile(*layoutFile)
		if err != nil {
			log.Fatalf("failed to load layout: %v", err)
		}
		layout = l
	}

	r := cryptorand.New()
	if *seed != 0 {
		r = rand.New(rand.NewSource(*seed))
	}

	console := io.NewConsole(os.Stdin, os.Stdout)
	players, err := console.PromptPlayers(2, 8)
	if err != nil {
		log.Fatalf("failed to read players: %v", err)
	}

	g, err := game.New(&game.Config{
		Layout:    layout,
		Players:   players,
		Presenter: console,
		Random:    dice.New(r),
		MaxTurns:  *maxTurns,
	})
	if err != nil {
		log.Fatalf("failed to instantiate game: %v", err)
	}

	for {
		_, status, err := g.Turn()
		if errors.Is(err, game.ErrGameOver) {
			break
		} else if err != nil {
			log.Fatalf("failed to play turn: %v", err)
		}
		if err := console.Err(); err != nil {
			log.Printf("stopped reading input: %v", err)
			break
		}
		if status == monopoly.Finished {
			break
		}
		if !*noPause {
			// Closing stdin ends the game early.
			if err := console.Pause(); err != nil {
				break
			}
		}
	}

	console.PrintOutcome(g.Outcome())
}

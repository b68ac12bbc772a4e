package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/TomBebb/Monopoly/client"
	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/TomBebb/Monopoly/web"
	"github.com/namsral/flag"
	"github.com/olekukonko/tablewriter"
)

func main() {
	var (
		serverScheme = flag.String("server_scheme", "http", "The scheme of the server to connect to.")
		serverAddr   = flag.String("server_addr", "localhost:8080", "The address of the server to connect to.")
		gameToWatch  = flag.String("game_to_watch", "", "The ID of the game to watch, will create one if its blank")
		players      = flag.String("players", "", "Comma-separated player names for a created game")
		maxTurns     = flag.Int("max_turns", 20, "Turn limit for a created game")
	)
	flag.Parse()

	c, err := client.New(*serverScheme, *serverAddr)
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}

	gID := monopoly.GameID(*gameToWatch)
	created := gID == ""
	if created {
		opts := &client.GameOptions{MaxTurns: *maxTurns}
		if *players != "" {
			opts.Players = strings.Split(*players, ",")
		}
		if gID, err = c.CreateGame(opts); err != nil {
			log.Fatalf("failed to create game: %v", err)
		}
		fmt.Printf("Created game %q\n", gID)
	}

	hooks := client.WSHooks{
		OnTurnEnd: printTurn,
		OnEnd:     printEnd,
	}
	if created {
		// We made the game, so we're the only ones who can move it along.
		hooks.OnConnect = func() { playTurns(c, gID) }
	}

	if err := c.ListenForUpdates(gID, hooks); err != nil {
		log.Fatalf("lost connection to the game: %v", err)
	}
}

func playTurns(c *client.Client, gID monopoly.GameID) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Press ENTER to play the next turn\n")
		if _, err := reader.ReadString('\n'); err != nil {
			return
		}
		te, err := c.PlayTurn(gID)
		if err != nil {
			log.Printf("failed to play turn: %v", err)
			continue
		}
		if te.Status == monopoly.Finished {
			return
		}
	}
}

func printTurn(te *web.TurnEnd) {
	fmt.Printf("Turn %d of game %s\n", te.Turn, te.GameID)
	for _, ev := range te.Events {
		if line := describe(ev); line != "" {
			fmt.Println("  " + line)
		}
	}
	if te.State == nil {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Player", "Capital", "Position", "Owns"})
	for _, p := range te.State.Players {
		pos := strconv.Itoa(p.Position)
		if p.Position < len(te.State.Spaces) {
			pos = te.State.Spaces[p.Position].Name
		}
		if p.InJail {
			pos += " (in jail)"
		}
		table.Append([]string{p.Name, "£" + p.Capital.StringFixed(0), pos, strconv.Itoa(len(p.Owned))})
	}
	table.Render()
}

func describe(ev *web.Event) string {
	switch ev.Type {
	case web.EventRolled:
		return fmt.Sprintf("%s rolled %v", ev.Player, ev.Dice)
	case web.EventLanded:
		return fmt.Sprintf("%s landed on %s", ev.Player, ev.Space)
	case web.EventBought:
		return fmt.Sprintf("%s bought %s for £%s", ev.Player, ev.Space, ev.Amount)
	case web.EventPaidRent:
		return fmt.Sprintf("%s paid %s £%s for %s", ev.Player, ev.Owner, ev.Amount, ev.Space)
	case web.EventTaxed:
		return fmt.Sprintf("%s paid £%s at %s", ev.Player, ev.Amount, ev.Space)
	case web.EventSentToJail:
		return fmt.Sprintf("%s went to jail", ev.Player)
	case web.EventFreedFromJail:
		return fmt.Sprintf("%s got out of jail (%s)", ev.Player, ev.Cause)
	case web.EventPickedCard:
		return fmt.Sprintf("%s picked %s", ev.Player, ev.Card)
	case web.EventAddedHouse:
		return fmt.Sprintf("%s built on %s", ev.Player, ev.Space)
	case web.EventPassedGo:
		return fmt.Sprintf("%s passed go", ev.Player)
	}
	return ""
}

func printEnd(ge *web.GameEnd) {
	fmt.Printf("Game %s is over\n", ge.GameID)
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "Player", "Capital", "Spaces"})
	for i, s := range ge.Standings {
		table.Append([]string{strconv.Itoa(i + 1), s.Name, "£" + s.Capital.StringFixed(0), strconv.Itoa(s.Owned)})
	}
	table.Render()
}

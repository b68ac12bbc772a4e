package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/TomBebb/Monopoly/boardgen"
	"github.com/TomBebb/Monopoly/monopoly"
	"github.com/namsral/flag"
)

func main() {
	file := flag.String("file", "", "A JSON layout to check. If blank, the standard board is printed instead.")
	flag.Parse()

	if *file == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(boardgen.Standard()); err != nil {
			log.Fatalf("failed to encode layout: %v", err)
		}
		return
	}

	l, err := boardgen.LoadFile(*file)
	if err != nil {
		log.Fatal(err)
	}
	if err := boardgen.Validate(l); err != nil {
		log.Fatal(err)
	}

	counts := make(map[monopoly.SpaceKind]int)
	for _, d := range l.Spaces {
		counts[d.Kind]++
	}
	fmt.Printf("%s: %d spaces, jail at %d, %d properties, %d stations, %d utilities\n",
		*file, len(l.Spaces), l.Jail, counts[monopoly.KindProperty], counts[monopoly.KindStation], counts[monopoly.KindUtility])
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"world-manager/feature/world/formats"
	"world-manager/feature/world/models"
)

// Offline normalizer: feed it an authored world document and it prints the
// records the loader would write, without touching any store. Handy when a
// document loads fewer records than expected.
func main() {
	strict := flag.Bool("strict", false, "reject records with missing required fields")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: debug_normalize [-strict] <document.json>")
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := formats.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	policy := models.Policy{Strict: *strict}

	if entries := formats.Collection(doc, "rooms"); len(entries) > 0 {
		fmt.Printf("=== %d room entries ===\n", len(entries))
		for _, entry := range entries {
			room, exits, err := models.NormalizeRoom(entry, policy)
			if err != nil {
				fmt.Printf("SKIP %s: %v\n", entry.Key, err)
				continue
			}
			dump(room)
			for _, exit := range exits {
				dump(exit)
			}
		}
	}

	if entries := formats.Collection(doc, "exits"); len(entries) > 0 {
		fmt.Printf("=== %d exit entries ===\n", len(entries))
		for _, entry := range entries {
			exit, err := models.NormalizeExit(entry, 0, policy)
			if err != nil {
				fmt.Printf("SKIP %s: %v\n", entry.Key, err)
				continue
			}
			dump(exit)
		}
	}

	if entries := formats.Collection(doc, "archetypes"); len(entries) > 0 {
		fmt.Printf("=== %d archetype entries ===\n", len(entries))
		for _, entry := range entries {
			archetype, err := models.NormalizeArchetype(entry, policy)
			if err != nil {
				fmt.Printf("SKIP %s: %v\n", entry.Key, err)
				continue
			}
			dump(archetype)
		}
	}

	if entries := formats.Collection(doc, "itemPrototypes", "prototypes"); len(entries) > 0 {
		fmt.Printf("=== %d prototype entries ===\n", len(entries))
		for _, entry := range entries {
			proto, err := models.NormalizePrototype(entry, policy)
			if err != nil {
				fmt.Printf("SKIP %s: %v\n", entry.Key, err)
				continue
			}
			dump(proto)
		}
	}
}

func dump(record any) {
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

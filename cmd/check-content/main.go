// Package main provides the check-content binary: an authoring-time
// validator for balance override and vocabulary pack files. It exits
// non-zero on the first contract violation, so content changes can be gated
// in CI before they reach a live server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/okonen/lingoclash/internal/game/combat"
	"github.com/okonen/lingoclash/internal/game/vocab"
)

func main() {
	balanceFile := flag.String("balance", "", "balance override YAML file to validate (optional)")
	vocabDir := flag.String("vocab", "", "vocabulary pack directory to validate (optional)")
	flag.Parse()

	if *balanceFile == "" && *vocabDir == "" {
		fmt.Fprintln(os.Stderr, "nothing to check: pass -balance and/or -vocab")
		os.Exit(2)
	}

	if *balanceFile != "" {
		tables, err := combat.LoadTablesFile(*balanceFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "balance: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("balance: ok (version %s)\n", tables.Version)
	}

	if *vocabDir != "" {
		catalog, err := vocab.LoadDirectory(*vocabDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "vocabulary: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("vocabulary: ok (%d items)\n", catalog.Len())
		for _, id := range catalog.IDs() {
			item, _ := catalog.Get(id)
			fmt.Printf("  %-30s level=%d category=%-7s base_power=%g\n",
				id, item.Level, item.Category, item.BasePower)
		}
	}
}

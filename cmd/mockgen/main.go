package main

import (
	"epicurve/cmd/mockgen/engine"
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	scenario := flag.String("scenario", "mild", "Scenario to generate: mild, waves, chaos")
	distribution := flag.String("distribution", "gaussian", "Wave shape to use: gaussian, weibull")
	out := flag.String("out", "./data/mock.csv", "Output CSV file")
	count := flag.Int("count", 5, "Number of jurisdictions to generate")
	days := flag.Int("days", 200, "Number of days per jurisdiction")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Scenario:      *scenario,
		Distribution:  *distribution,
		Jurisdictions: *count,
		Days:          *days,
		Seed:          *seed,
		Start:         time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	fmt.Printf("Generating scenario '%s' (Distribution: %s, Jurisdictions: %d, Days: %d) to %s...\n", cfg.Scenario, cfg.Distribution, cfg.Jurisdictions, cfg.Days, *out)

	series := engine.Generate(cfg)

	if err := engine.Save(*out, cfg.Start, series); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}

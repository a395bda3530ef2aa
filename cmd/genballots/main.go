// Command genballots writes a synthetic election manifest for exercising
// the counting methods and the tallystick command.
//
//	genballots -candidates 8 -ballots 10000 -output election.yaml
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phayes/tallystick/internal/testutils"
)

func main() {
	var (
		numCandidates = flag.Int("candidates", 6, "Number of candidates")
		numBallots    = flag.Int("ballots", 1000, "Number of ballots to generate")
		maxWeight     = flag.Int("max-weight", 1, "Maximum ballot weight; 1 disables weighting")
		seed          = flag.Int64("seed", 0, "Random seed; 0 derives one from the clock")
		outputPath    = flag.String("output", "election.yaml", "Output file path")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	election := testutils.GenerateElection(*numCandidates, *numBallots, *maxWeight, *seed)

	data, err := yaml.Marshal(election)
	if err != nil {
		log.Fatalf("Failed to encode election: %v", err)
	}
	if err := os.WriteFile(*outputPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write election: %v", err)
	}

	fmt.Printf("Generated election manifest:\n")
	fmt.Printf("- Path: %s\n", *outputPath)
	fmt.Printf("- Candidates: %d\n", len(election.Candidates))
	fmt.Printf("- Ballots: %d\n", len(election.Ballots))
	fmt.Printf("- Seed: %d\n", *seed)
}

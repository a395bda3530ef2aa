// Command tallystick counts an election described by a YAML manifest and
// prints the ranking and winners for one or all voting methods.
//
// Usage:
//
//	tallystick -election election.yaml
//	tallystick -election election.yaml -method all
//	tallystick -election election.yaml -method schulze -metrics-addr :9090
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog"

	"github.com/phayes/tallystick/ballotio"
)

// allMethods are the methods a multi-method report runs. Score voting is
// absent: the text ballot notation carries no per-candidate scores.
var allMethods = []string{"plurality", "approval", "borda", "condorcet", "schulze", "irv", "stv"}

func main() {
	klog.InitFlags(nil)

	var (
		electionPath = flag.String("election", "", "Path to a YAML election manifest")
		method       = flag.String("method", "", "Voting method to run; overrides the manifest, 'all' runs every method")
		caseFold     = flag.Bool("case-fold", false, "Case-fold candidate names when matching ballots against the roster")
		metricsAddr  = flag.String("metrics-addr", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	)
	flag.Parse()
	defer klog.Flush()

	if *electionPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tallystick -election <manifest.yaml> [-method <method>|all]")
		os.Exit(2)
	}

	f, err := os.Open(*electionPath)
	if err != nil {
		klog.Fatalf("open election manifest: %v", err)
	}
	election, err := ballotio.LoadElection(f)
	f.Close()
	if err != nil {
		klog.Fatalf("load election manifest: %v", err)
	}

	if *metricsAddr != "" {
		serveMetrics(*metricsAddr)
	}
	m := newMetrics()

	methods := []string{election.Method}
	if *method == "all" {
		methods = allMethods
	} else if *method != "" {
		methods = []string{*method}
	}

	results, err := runAll(election, methods, *caseFold, m)
	if err != nil {
		klog.Fatalf("count failed: %v", err)
	}

	for _, res := range results {
		printResult(res)
	}
}

// runAll counts the election once per method. Methods run concurrently;
// each works from its own tally, so they share nothing but the manifest.
func runAll(e *ballotio.Election, methods []string, caseFold bool, m *metrics) ([]*result, error) {
	var (
		g       errgroup.Group
		mu      sync.Mutex
		results = make(map[string]*result, len(methods))
	)

	for _, method := range methods {
		method := method
		g.Go(func() error {
			res, err := runElection(e, method, caseFold, m)
			if err != nil {
				return err
			}
			mu.Lock()
			results[method] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ordered := make([]*result, 0, len(results))
	for _, method := range methods {
		if res, ok := results[method]; ok {
			ordered = append(ordered, res)
		}
	}
	return ordered, nil
}

func printResult(res *result) {
	fmt.Printf("== %s ==\n", res.Method)

	byRank := make(map[int][]string)
	var ranks []int
	for _, rc := range res.Ranked {
		if _, ok := byRank[rc.Rank]; !ok {
			ranks = append(ranks, rc.Rank)
		}
		byRank[rc.Rank] = append(byRank[rc.Rank], rc.Candidate)
	}
	sort.Ints(ranks)
	for _, rank := range ranks {
		fmt.Printf("  %d. %s\n", rank+1, strings.Join(byRank[rank], " = "))
	}

	winners := res.Winners
	fmt.Printf("  winners: %s\n", strings.Join(winners.All(), ", "))
	if winners.IsOverflowing() {
		fmt.Printf("  tie overflow: %s\n", strings.Join(winners.Overflow(), ", "))
	}
	fmt.Println()
}

package main

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"k8s.io/klog"

	"github.com/phayes/tallystick"
	"github.com/phayes/tallystick/approval"
	"github.com/phayes/tallystick/ballotio"
	"github.com/phayes/tallystick/borda"
	"github.com/phayes/tallystick/condorcet"
	"github.com/phayes/tallystick/counting"
	"github.com/phayes/tallystick/irv"
	"github.com/phayes/tallystick/plurality"
	"github.com/phayes/tallystick/quota"
	"github.com/phayes/tallystick/ranking"
	"github.com/phayes/tallystick/schulze"
	"github.com/phayes/tallystick/stv"
)

// result is one method's outcome for an election.
type result struct {
	Method  string
	Ranked  []ranking.RankedCandidate[string]
	Winners ranking.RankedWinners[string]
}

// runElection counts an election with the given method, dispatching on
// the manifest's count kind.
func runElection(e *ballotio.Election, method string, caseFold bool, m *metrics) (*result, error) {
	switch e.Counting {
	case "float":
		return runWith(counting.Float64(), e, method, caseFold, m)
	case "decimal":
		return runWith(counting.Decimal(), e, method, caseFold, m)
	default:
		return runWith(counting.Int64(), e, method, caseFold, m)
	}
}

func runWith[C any](arith counting.Arithmetic[C], e *ballotio.Election, method string, caseFold bool, m *metrics) (*result, error) {
	normalizer := ballotio.NewNormalizer(caseFold)

	candidates := make([]string, len(e.Candidates))
	roster := make(map[string]struct{}, len(e.Candidates))
	for i, c := range e.Candidates {
		candidates[i] = normalizer.Normalize(c)
		roster[candidates[i]] = struct{}{}
	}

	progress := rate.Sometimes{Interval: 2 * time.Second}

	votes := make([]ballotio.WeightedVote[C], 0, len(e.Ballots))
	for i, line := range e.Ballots {
		vote, err := ballotio.ParseLine(line, arith)
		if err != nil {
			klog.Warningf("ballot %d rejected: %v", i+1, err)
			m.rejected("parse_error")
			continue
		}
		vote.Vote = normalizer.NormalizeVote(vote.Vote)

		if unknown, ok := unknownCandidate(vote.Vote, roster); ok {
			if suggestion, found := ballotio.SuggestCandidate(unknown, candidates); found {
				klog.Warningf("ballot %d rejected: %v: %q (did you mean %q?)",
					i+1, tallystick.ErrUnknownCandidate, unknown, suggestion)
			} else {
				klog.Warningf("ballot %d rejected: %v: %q", i+1, tallystick.ErrUnknownCandidate, unknown)
			}
			m.rejected("unknown_candidate")
			continue
		}

		votes = append(votes, vote)
		m.ballotsParsed.Inc()
		progress.Do(func() {
			klog.Infof("parsed %d/%d ballots", i+1, len(e.Ballots))
		})
	}

	start := time.Now()
	res, err := tallyVotes(arith, e, method, candidates, votes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	m.observeTally(method, time.Since(start))
	return res, nil
}

func unknownCandidate(vote ballotio.ParsedVote, roster map[string]struct{}) (string, bool) {
	for _, mark := range vote.Marks {
		if _, ok := roster[mark.Candidate]; !ok {
			return mark.Candidate, true
		}
	}
	return "", false
}

func tallyVotes[C any](
	arith counting.Arithmetic[C],
	e *ballotio.Election,
	method string,
	candidates []string,
	votes []ballotio.WeightedVote[C],
) (*result, error) {
	switch method {
	case "plurality":
		t := plurality.New[string](arith, e.NumWinners)
		for _, v := range votes {
			if len(v.Vote.Marks) > 0 {
				t.AddWeighted(v.Vote.Marks[0].Candidate, v.Weight)
			}
		}
		return &result{Method: method, Ranked: t.Ranked(), Winners: t.Winners()}, nil

	case "approval":
		t := approval.New[string](arith, e.NumWinners)
		for _, v := range votes {
			t.AddWeighted(v.Vote.Selections(), v.Weight)
		}
		return &result{Method: method, Ranked: t.Ranked(), Winners: t.Winners()}, nil

	case "borda":
		variant := borda.Variant(e.Variant)
		if e.Variant == "" {
			variant = borda.Borda
		}
		t, err := borda.New[string](arith, e.NumWinners, variant)
		if err != nil {
			return nil, err
		}
		for _, v := range votes {
			if err := t.AddWeighted(v.Vote.Selections(), v.Weight); err != nil {
				return nil, err
			}
		}
		return &result{Method: method, Ranked: t.Ranked(), Winners: t.Winners()}, nil

	case "condorcet":
		t := condorcet.WithCandidates(arith, e.NumWinners, candidates)
		for _, v := range votes {
			if err := t.AddRankedWeighted(v.Vote.Marks, v.Weight); err != nil {
				return nil, err
			}
		}
		return &result{Method: method, Ranked: t.Ranked(), Winners: t.Winners()}, nil

	case "schulze":
		variant := schulze.Variant(e.Variant)
		if e.Variant == "" {
			variant = schulze.Winning
		}
		t, err := schulze.WithCandidates(arith, e.NumWinners, variant, candidates)
		if err != nil {
			return nil, err
		}
		for _, v := range votes {
			if err := t.AddRankedWeighted(v.Vote.Marks, v.Weight); err != nil {
				return nil, err
			}
		}
		return &result{Method: method, Ranked: t.Ranked(), Winners: t.Winners()}, nil

	case "irv":
		t := irv.WithCandidates(arith, candidates)
		for _, v := range votes {
			if v.Vote.Ranked {
				return nil, errors.New("instant-runoff ballots cannot contain ties")
			}
			if err := t.AddWeighted(v.Vote.Selections(), v.Weight); err != nil {
				return nil, err
			}
		}
		return &result{Method: method, Ranked: t.Ranked(), Winners: t.Winners()}, nil

	case "stv":
		q := quota.Quota(e.Quota)
		if e.Quota == "" {
			q = quota.Droop
		}
		t, err := stv.New[string](arith, q, e.NumWinners)
		if err != nil {
			return nil, err
		}
		for _, v := range votes {
			if v.Vote.Ranked {
				return nil, errors.New("transferable-vote ballots cannot contain ties")
			}
			if err := t.AddWeighted(v.Vote.Selections(), v.Weight); err != nil {
				return nil, err
			}
		}
		winners := t.Winners()
		return &result{Method: method, Ranked: winners.Winners(), Winners: winners}, nil

	default:
		return nil, fmt.Errorf("unknown method %q", method)
	}
}

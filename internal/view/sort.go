// Package view derives ordered, filtered and grouped views from screening snapshots.
// Inputs are never mutated; every function returns a freshly allocated result.
package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wonny/epsdash/internal/contracts"
)

// Null surrogates. They exceed any realistic field value so missing values sort to one end.
const (
	missingCompositeRank = 9999  // 꼴찌 취급
	missingRevGrowth     = -9999 // 내림차순에서 꼴찌
	missingFwdPE         = 9999
)

// CandidateKey is a sortable candidate column
type CandidateKey string

const (
	KeyRank      CandidateKey = "rank"
	KeyComposite CandidateKey = "composite"
	KeyScore     CandidateKey = "score"
	KeyGap       CandidateKey = "gap"
	KeyRevGrowth CandidateKey = "rev_growth"
	KeyPrice     CandidateKey = "price"
	KeyFwdPE     CandidateKey = "fwd_pe"
)

// CandidateKeys lists every sort key
var CandidateKeys = []CandidateKey{KeyRank, KeyComposite, KeyScore, KeyGap, KeyRevGrowth, KeyPrice, KeyFwdPE}

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseCandidateKey parses a sort key; empty means rank
func ParseCandidateKey(s string) (CandidateKey, error) {
	if s == "" {
		return KeyRank, nil
	}
	k := CandidateKey(strings.ToLower(s))
	for _, known := range CandidateKeys {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key: %q", s)
}

// ParseDirection parses "asc" or "desc"; empty returns def
func ParseDirection(s string, def Direction) (Direction, error) {
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "asc":
		return Asc, nil
	case "desc":
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction: %q", s)
}

// DefaultDirection is the natural direction of a key (best first)
func DefaultDirection(key CandidateKey) Direction {
	switch key {
	case KeyScore, KeyRevGrowth, KeyPrice:
		return Desc
	default:
		return Asc
	}
}

// sortValue extracts the numeric sort value of a candidate for key
func sortValue(c *contracts.Candidate, key CandidateKey) float64 {
	switch key {
	case KeyComposite:
		if c.CompositeRank == nil {
			return missingCompositeRank
		}
		return float64(*c.CompositeRank)
	case KeyScore:
		return c.AdjScore
	case KeyGap:
		return c.AdjGap
	case KeyRevGrowth:
		if c.RevGrowth == nil {
			return missingRevGrowth
		}
		return *c.RevGrowth
	case KeyPrice:
		return c.Price
	case KeyFwdPE:
		if c.FwdPE == nil {
			return missingFwdPE
		}
		return *c.FwdPE
	default:
		return float64(c.Part2Rank)
	}
}

// SortCandidates returns a sorted copy. Ties keep their input order.
func SortCandidates(records []contracts.Candidate, key CandidateKey, dir Direction) []contracts.Candidate {
	out := make([]contracts.Candidate, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		diff := sortValue(&out[i], key) - sortValue(&out[j], key)
		if dir == Desc {
			return diff > 0
		}
		return diff < 0
	})
	return out
}

// SortTrades returns a copy ordered by date in dir, ticker ascending on equal dates
func SortTrades(entries []contracts.PortfolioEntry, dir Direction) []contracts.PortfolioEntry {
	out := make([]contracts.PortfolioEntry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			if dir == Asc {
				return a.Date < b.Date
			}
			return a.Date > b.Date
		}
		return a.Ticker < b.Ticker
	})
	return out
}

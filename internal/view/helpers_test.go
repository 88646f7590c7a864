package view

import "github.com/wonny/epsdash/internal/contracts"

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func tickers(cs []contracts.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Ticker
	}
	return out
}

func sampleCandidates() []contracts.Candidate {
	return []contracts.Candidate{
		{Ticker: "NVDA", Part2Rank: 1, CompositeRank: intp(2), AdjScore: 28, AdjGap: -12, Price: 480, RevGrowth: floatp(85), FwdPE: floatp(35), Status: contracts.StatusVerified},
		{Ticker: "AMD", Part2Rank: 2, CompositeRank: nil, AdjScore: 22, AdjGap: -6, Price: 140, RevGrowth: nil, Status: contracts.StatusNew},
		{Ticker: "MU", Part2Rank: 3, CompositeRank: intp(1), AdjScore: 22, AdjGap: 2, Price: 90, RevGrowth: floatp(15), FwdPE: floatp(9), Status: contracts.StatusPending},
		{Ticker: "AVGO", Part2Rank: 4, CompositeRank: intp(3), AdjScore: 18, AdjGap: -1, Price: 1100, RevGrowth: floatp(30), Status: contracts.StatusVerified},
		{Ticker: "SMCI", Part2Rank: 5, CompositeRank: nil, AdjScore: 11, AdjGap: 8, Price: 700, RevGrowth: floatp(-4), FwdPE: floatp(14), Status: contracts.StatusNew},
	}
}

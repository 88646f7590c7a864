package view

import (
	"fmt"
	"strings"

	"github.com/wonny/epsdash/internal/contracts"
)

// FilterAll disables a filter
const FilterAll = "all"

// StatusFilter selects candidates by status; "all" keeps everything
type StatusFilter string

// ActionFilter selects portfolio entries by action; "all" keeps everything
type ActionFilter string

// ParseStatusFilter accepts "all" (or empty) and any status form
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || strings.EqualFold(s, FilterAll) {
		return FilterAll, nil
	}
	st, err := contracts.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("invalid status filter: %w", err)
	}
	return StatusFilter(st), nil
}

// ParseActionFilter accepts "all" (or empty) and enter/hold/exit
func ParseActionFilter(s string) (ActionFilter, error) {
	if s == "" || strings.EqualFold(s, FilterAll) {
		return FilterAll, nil
	}
	a, err := contracts.ParseAction(s)
	if err != nil {
		return "", fmt.Errorf("invalid action filter: %w", err)
	}
	return ActionFilter(a), nil
}

// FilterCandidates keeps candidates matching f, preserving order
func FilterCandidates(records []contracts.Candidate, f StatusFilter) []contracts.Candidate {
	out := make([]contracts.Candidate, 0, len(records))
	for _, c := range records {
		if f == FilterAll || f == "" || StatusFilter(c.Status) == f {
			out = append(out, c)
		}
	}
	return out
}

// FilterTrades keeps entries matching f, preserving order
func FilterTrades(entries []contracts.PortfolioEntry, f ActionFilter) []contracts.PortfolioEntry {
	out := make([]contracts.PortfolioEntry, 0, len(entries))
	for _, e := range entries {
		if f == FilterAll || f == "" || ActionFilter(e.Action) == f {
			out = append(out, e)
		}
	}
	return out
}

package view

import (
	"github.com/wonny/epsdash/internal/contracts"
)

// CandidateGroup is one status bucket of a candidate table
type CandidateGroup struct {
	Status   contracts.Status      `json:"status"`
	Label    string                `json:"label"`
	Sublabel string                `json:"sublabel"`
	Items    []contracts.Candidate `json:"items"`
}

var groupLabels = map[contracts.Status][2]string{
	contracts.StatusVerified: {"✅ 검증 완료", "3일 연속 Top 30"},
	contracts.StatusPending:  {"⏳ 대기", "2일 연속 Top 30"},
	contracts.StatusNew:      {"\U0001f195 신규 진입", "오늘 처음 진입"},
}

// GroupCandidates partitions sorted candidates into verified, pending and new buckets.
// Bucket order is fixed and empty buckets are omitted. Input order is kept inside each bucket;
// a candidate without a valid status lands in the new bucket.
func GroupCandidates(sorted []contracts.Candidate) []CandidateGroup {
	buckets := make(map[contracts.Status][]contracts.Candidate, len(contracts.Statuses))
	for _, c := range sorted {
		st := bucketOf(c.Status)
		buckets[st] = append(buckets[st], c)
	}

	groups := make([]CandidateGroup, 0, len(contracts.Statuses))
	for _, st := range contracts.Statuses {
		items := buckets[st]
		if len(items) == 0 {
			continue
		}
		labels := groupLabels[st]
		groups = append(groups, CandidateGroup{
			Status:   st,
			Label:    labels[0],
			Sublabel: labels[1],
			Items:    items,
		})
	}
	return groups
}

// bucketOf maps an invalid status to the new bucket
func bucketOf(st contracts.Status) contracts.Status {
	if !st.Valid() {
		return contracts.StatusNew
	}
	return st
}

package contracts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the 3-day verification status of a screening candidate
// ⭐ SSOT: 후보 상태는 이 세 가지뿐 (closed enum)
type Status string

const (
	StatusVerified Status = "verified" // ✅ 3일 연속 Top 30
	StatusPending  Status = "pending"  // ⏳ 2일 연속
	StatusNew      Status = "new"      // 🆕 신규 진입
)

// Statuses lists every status in display order
var Statuses = []Status{StatusVerified, StatusPending, StatusNew}

// ParseStatus accepts the upstream emoji tag or the word form
func ParseStatus(s string) (Status, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSuffix(v, "\ufe0f")

	switch strings.ToLower(v) {
	case "verified", "✅":
		return StatusVerified, nil
	case "pending", "⏳":
		return StatusPending, nil
	case "new", "\U0001f195":
		return StatusNew, nil
	}
	return "", fmt.Errorf("unknown status: %q", s)
}

// Valid reports whether s is one of the three statuses
func (s Status) Valid() bool {
	switch s {
	case StatusVerified, StatusPending, StatusNew:
		return true
	}
	return false
}

// Emoji returns the upstream tag for the status
func (s Status) Emoji() string {
	switch s {
	case StatusVerified:
		return "✅"
	case StatusPending:
		return "⏳"
	case StatusNew:
		return "\U0001f195"
	}
	return ""
}

// Label returns the short badge label
func (s Status) Label() string {
	switch s {
	case StatusVerified:
		return "검증"
	case StatusPending:
		return "대기"
	case StatusNew:
		return "신규"
	}
	return string(s)
}

func (s Status) String() string {
	return string(s)
}

// UnmarshalJSON decodes either form and rejects unknown values
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Action is a model portfolio log action
type Action string

const (
	ActionEnter Action = "enter"
	ActionHold  Action = "hold"
	ActionExit  Action = "exit"
)

// ParseAction parses a portfolio action (case-insensitive)
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown action: %q", s)
	}
	return a, nil
}

// Valid reports whether a is enter, hold or exit
func (a Action) Valid() bool {
	switch a {
	case ActionEnter, ActionHold, ActionExit:
		return true
	}
	return false
}

// Label returns the Korean label used in trade tables
func (a Action) Label() string {
	switch a {
	case ActionEnter:
		return "진입"
	case ActionHold:
		return "보유"
	case ActionExit:
		return "청산"
	}
	return string(a)
}

func (a Action) String() string {
	return string(a)
}

// UnmarshalJSON rejects unknown actions
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseAction(raw)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Package status turns the backend's heterogeneous application payloads
// into one canonical, display-ready ApplicationRecord.
package status

import (
	"strings"
	"time"
)

// ActivityType names a step of the application process. Values outside the
// known set are kept verbatim; the backend may add steps at any time.
type ActivityType string

const (
	ActivityLanguage               ActivityType = "language"
	ActivityBackgroundVerification ActivityType = "backgroundVerification"
	ActivityResidency              ActivityType = "residency"
	ActivityProhibitions           ActivityType = "prohibitions"
	ActivityCitizenshipTest        ActivityType = "citizenshipTest"
	ActivityCitizenshipOath        ActivityType = "citizenshipOath"
)

var activityLabels = map[ActivityType]string{
	ActivityLanguage:               "Language Test",
	ActivityBackgroundVerification: "Background Verification",
	ActivityResidency:              "Residency Requirement",
	ActivityProhibitions:           "Prohibitions",
	ActivityCitizenshipTest:        "Citizenship Test",
	ActivityCitizenshipOath:        "Citizenship Oath",
}

// Known reports whether t is one of the predefined steps.
func (t ActivityType) Known() bool {
	_, ok := activityLabels[t]
	return ok
}

func (t ActivityType) Label() string {
	if l, ok := activityLabels[t]; ok {
		return l
	}
	return string(t)
}

// Status is the state of an application or one of its activities.
type Status string

const (
	StatusNotStarted Status = "notStarted"
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
)

func (s Status) Known() bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusCompleted
}

func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// BilingualText holds the English and French variants of a portal message.
type BilingualText struct {
	EN string `json:"en"`
	FR string `json:"fr"`
}

// Resolve returns English, then French, then "".
func (b BilingualText) Resolve() string {
	if strings.TrimSpace(b.EN) != "" {
		return b.EN
	}
	if strings.TrimSpace(b.FR) != "" {
		return b.FR
	}
	return ""
}

type Activity struct {
	Type   ActivityType `json:"type"`
	Status Status       `json:"status"`
	Order  int          `json:"order"`
}

// HistoryEntry is one event of the application timeline. Heading and
// Description are the resolved forms of Title and Text.
type HistoryEntry struct {
	Timestamp   int64         `json:"timestamp"`
	Title       BilingualText `json:"title"`
	Text        BilingualText `json:"text"`
	Heading     string        `json:"heading"`
	Description string        `json:"description"`
	IsNew       bool          `json:"isNew"`
	IsWaiting   bool          `json:"isWaiting"`
	Type        string        `json:"type"`
	Activity    ActivityType  `json:"activity"`
}

// Time converts the epoch-millisecond timestamp.
func (h HistoryEntry) Time() time.Time {
	return time.UnixMilli(h.Timestamp).UTC()
}

// ApplicationRecord is a normalized snapshot of one application. Activities
// are ordered by Order ascending and History by Timestamp descending.
type ApplicationRecord struct {
	ApplicationNumber string         `json:"applicationNumber"`
	UCI               string         `json:"uci"`
	Status            Status         `json:"status"`
	LastUpdatedAt     int64          `json:"lastUpdatedAt"`
	Activities        []Activity     `json:"activities"`
	History           []HistoryEntry `json:"history"`
}

func (r ApplicationRecord) LastUpdated() time.Time {
	if r.LastUpdatedAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.LastUpdatedAt).UTC()
}

// Progress counts completed activities.
func (r ApplicationRecord) Progress() (completed, total int) {
	for _, a := range r.Activities {
		if a.Status == StatusCompleted {
			completed++
		}
	}
	return completed, len(r.Activities)
}

// NewEvents counts history entries flagged as new by the portal.
func (r ApplicationRecord) NewEvents() int {
	n := 0
	for _, h := range r.History {
		if h.IsNew {
			n++
		}
	}
	return n
}

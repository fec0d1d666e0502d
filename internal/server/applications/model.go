// Package applications keeps timestamped snapshots of IRCC application
// records in the portal's own JSON shape.
package applications

const (
	StatusNotStarted = "notStarted"
	StatusInProgress = "inProgress"
	StatusCompleted  = "completed"
)

// Steps is the activity sequence every record walks through.
var Steps = []string{
	"language",
	"backgroundVerification",
	"residency",
	"prohibitions",
	"citizenshipTest",
	"citizenshipOath",
}

type Text struct {
	EN string `json:"en"`
	FR string `json:"fr"`
}

type Activity struct {
	Activity string `json:"activity"`
	Order    int    `json:"order"`
	Status   string `json:"status"`
}

type HistoryEntry struct {
	Time      int64  `json:"time"`
	IsNew     bool   `json:"isNew"`
	IsWaiting bool   `json:"isWaiting"`
	Type      string `json:"type"`
	Activity  string `json:"activity"`
	LoadTime  int64  `json:"loadTime"`
	Title     Text   `json:"title"`
	Text      Text   `json:"text"`
}

// Record is one snapshot of an application, keyed by LastUpdatedTime
// (epoch milliseconds).
type Record struct {
	ApplicationNumber string         `json:"applicationNumber"`
	UCI               string         `json:"uci"`
	LastUpdatedTime   int64          `json:"lastUpdatedTime"`
	Status            string         `json:"status"`
	Activities        []Activity     `json:"activities"`
	History           []HistoryEntry `json:"history"`
	Actions           []string       `json:"actions"`
}

func (r Record) clone() Record {
	out := r
	out.Activities = append([]Activity(nil), r.Activities...)
	out.History = append([]HistoryEntry(nil), r.History...)
	out.Actions = append([]string{}, r.Actions...)
	return out
}

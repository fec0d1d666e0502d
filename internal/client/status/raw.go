package status

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// RawApplication is an application payload as decoded from any of the
// backend's shapes, before normalization.
type RawApplication struct {
	ApplicationNumber string
	UCI               string
	Status            string
	LastUpdated       int64
	Activities        []RawActivity
	History           []RawHistory
}

type RawActivity struct {
	Activity string
	Status   string
	Order    int
}

type RawHistory struct {
	Time      int64
	Title     BilingualText
	Text      BilingualText
	IsNew     bool
	IsWaiting bool
	Type      string
	Activity  string
}

type rawApplicationJSON struct {
	ApplicationNumber      looseString       `json:"applicationNumber"`
	ApplicationNumberSnake looseString       `json:"application_number"`
	UCI                    looseString       `json:"uci"`
	Status                 looseString       `json:"status"`
	LastUpdatedTime        looseMillis       `json:"lastUpdatedTime"`
	LastUpdatedTimeSnake   looseMillis       `json:"last_updated_time"`
	LastUpdatedAt          looseMillis       `json:"lastUpdatedAt"`
	Activities             []rawActivityJSON `json:"activities"`
	History                []rawHistoryJSON  `json:"history"`
}

type rawActivityJSON struct {
	Activity looseString `json:"activity"`
	Type     looseString `json:"type"`
	Status   looseString `json:"status"`
	Order    looseMillis `json:"order"`
}

type rawHistoryJSON struct {
	Time       looseMillis    `json:"time"`
	Timestamp  looseMillis    `json:"timestamp"`
	Title      looseBilingual `json:"title"`
	Text       looseBilingual `json:"text"`
	IsNew      looseBool      `json:"isNew"`
	IsNewSnake looseBool      `json:"is_new"`
	IsWaiting  looseBool      `json:"isWaiting"`
	Type       looseString    `json:"type"`
	Activity   looseString    `json:"activity"`
}

func (r *RawApplication) UnmarshalJSON(b []byte) error {
	var j rawApplicationJSON
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}

	*r = RawApplication{
		ApplicationNumber: firstString(j.ApplicationNumber, j.ApplicationNumberSnake),
		UCI:               string(j.UCI),
		Status:            string(j.Status),
		LastUpdated:       firstMillis(j.LastUpdatedTime, j.LastUpdatedTimeSnake, j.LastUpdatedAt),
	}

	r.Activities = make([]RawActivity, 0, len(j.Activities))
	for _, a := range j.Activities {
		r.Activities = append(r.Activities, RawActivity{
			Activity: firstString(a.Activity, a.Type),
			Status:   string(a.Status),
			Order:    int(a.Order),
		})
	}

	r.History = make([]RawHistory, 0, len(j.History))
	for _, h := range j.History {
		r.History = append(r.History, RawHistory{
			Time:      firstMillis(h.Time, h.Timestamp),
			Title:     BilingualText(h.Title),
			Text:      BilingualText(h.Text),
			IsNew:     bool(h.IsNew) || bool(h.IsNewSnake),
			IsWaiting: bool(h.IsWaiting),
			Type:      string(h.Type),
			Activity:  string(h.Activity),
		})
	}
	return nil
}

func firstString(vals ...looseString) string {
	for _, v := range vals {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

func firstMillis(vals ...looseMillis) int64 {
	for _, v := range vals {
		if v != 0 {
			return int64(v)
		}
	}
	return 0
}

// looseString accepts a JSON string or number; anything else decodes to "".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = looseString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// looseMillis accepts epoch milliseconds as a number or numeric string, or an
// RFC 3339 / HTTP date string; anything else decodes to 0.
type looseMillis int64

var millisLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
}

func (m *looseMillis) UnmarshalJSON(b []byte) error {
	*m = 0
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			*m = looseMillis(int64(f))
		}
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return nil
	}
	str = strings.TrimSpace(str)
	if n, err := strconv.ParseInt(str, 10, 64); err == nil {
		*m = looseMillis(n)
		return nil
	}
	for _, layout := range millisLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			*m = looseMillis(t.UnixMilli())
			return nil
		}
	}
	return nil
}

// looseBool treats null and non-boolean values as false.
type looseBool bool

func (v *looseBool) UnmarshalJSON(b []byte) error {
	var x bool
	if err := json.Unmarshal(b, &x); err != nil {
		*v = false
		return nil
	}
	*v = looseBool(x)
	return nil
}

// looseBilingual accepts {en, fr} or a bare string taken as English.
type looseBilingual BilingualText

func (l *looseBilingual) UnmarshalJSON(b []byte) error {
	*l = looseBilingual{}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		l.EN = str
		return nil
	}
	var pair struct {
		EN looseString `json:"en"`
		FR looseString `json:"fr"`
	}
	if err := json.Unmarshal(b, &pair); err == nil {
		l.EN, l.FR = string(pair.EN), string(pair.FR)
	}
	return nil
}

package status

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrMalformedPayload = errors.New("malformed application payload")

var activityByKey = map[string]ActivityType{}

var statusByKey = map[string]Status{
	"notstarted": StatusNotStarted,
	"inprogress": StatusInProgress,
	"completed":  StatusCompleted,
}

func init() {
	for t := range activityLabels {
		activityByKey[matchKey(string(t))] = t
	}
}

// matchKey folds case and drops separators so that "IN_PROGRESS",
// "in progress" and "inProgress" compare equal.
func matchKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', ' ', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseActivityType maps a backend activity code to ActivityType. Unknown
// codes come back unchanged.
func ParseActivityType(code string) ActivityType {
	if t, ok := activityByKey[matchKey(code)]; ok {
		return t
	}
	return ActivityType(code)
}

// ParseStatus maps a backend status code to Status. Unknown codes come back
// unchanged.
func ParseStatus(code string) Status {
	if s, ok := statusByKey[matchKey(code)]; ok {
		return s
	}
	return Status(code)
}

// FromRaw builds the canonical record. It never shares slices with raw.
func FromRaw(raw RawApplication) ApplicationRecord {
	rec := ApplicationRecord{
		ApplicationNumber: raw.ApplicationNumber,
		UCI:               raw.UCI,
		Status:            ParseStatus(raw.Status),
		LastUpdatedAt:     raw.LastUpdated,
		Activities:        make([]Activity, 0, len(raw.Activities)),
		History:           make([]HistoryEntry, 0, len(raw.History)),
	}

	for _, a := range raw.Activities {
		rec.Activities = append(rec.Activities, Activity{
			Type:   ParseActivityType(a.Activity),
			Status: ParseStatus(a.Status),
			Order:  a.Order,
		})
	}
	slices.SortStableFunc(rec.Activities, func(a, b Activity) int {
		return cmp.Compare(a.Order, b.Order)
	})

	for _, h := range raw.History {
		entry := HistoryEntry{
			Timestamp: h.Time,
			Title:     h.Title,
			Text:      h.Text,
			IsNew:     h.IsNew,
			IsWaiting: h.IsWaiting,
			Type:      h.Type,
		}
		if h.Activity != "" {
			entry.Activity = ParseActivityType(h.Activity)
		}
		entry.Heading = entry.Title.Resolve()
		entry.Description = entry.Text.Resolve()
		rec.History = append(rec.History, entry)
	}
	slices.SortStableFunc(rec.History, func(a, b HistoryEntry) int {
		return cmp.Compare(b.Timestamp, a.Timestamp)
	})

	return rec
}

// Normalize decodes a single application payload, optionally wrapped in a
// {"data": ...} envelope.
func Normalize(payload []byte) (ApplicationRecord, error) {
	obj, err := unwrapData(payload)
	if err != nil {
		return ApplicationRecord{}, err
	}
	var raw RawApplication
	if err := json.Unmarshal(obj, &raw); err != nil {
		return ApplicationRecord{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return FromRaw(raw), nil
}

// NormalizeList decodes a bare array, {"applications": [...]} or
// {"data": ...} wrapping either.
func NormalizeList(payload []byte) ([]ApplicationRecord, error) {
	items, err := listItems(payload)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationRecord, 0, len(items))
	for i, item := range items {
		rec, err := Normalize(item)
		if err != nil {
			return nil, fmt.Errorf("application %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func unwrapData(payload []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformedPayload)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if data, ok := fields["data"]; ok && isEnvelope(fields) {
		return unwrapData(data)
	}
	return trimmed, nil
}

// isEnvelope reports whether an object carries nothing but a data member
// (and optional message/status siblings).
func isEnvelope(fields map[string]json.RawMessage) bool {
	for k := range fields {
		switch k {
		case "data", "message", "success":
		default:
			return false
		}
	}
	return true
}

func listItems(payload []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		return items, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		if apps, ok := fields["applications"]; ok {
			if isNull(apps) {
				return nil, nil
			}
			return listItems(apps)
		}
		if data, ok := fields["data"]; ok {
			return listItems(data)
		}
		return nil, fmt.Errorf("%w: no applications member", ErrMalformedPayload)
	default:
		if isNull(trimmed) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: expected an array or object", ErrMalformedPayload)
	}
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}

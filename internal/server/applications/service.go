package applications

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

var stepTitles = map[string]Text{
	"language":               {EN: "Language test reviewed", FR: "Examen de langue évalué"},
	"backgroundVerification": {EN: "Background verification", FR: "Vérification des antécédents"},
	"residency":              {EN: "Residency requirement reviewed", FR: "Exigence de résidence évaluée"},
	"prohibitions":           {EN: "Prohibitions reviewed", FR: "Interdictions évaluées"},
	"citizenshipTest":        {EN: "Citizenship test", FR: "Examen pour la citoyenneté"},
	"citizenshipOath":        {EN: "Citizenship ceremony", FR: "Cérémonie de citoyenneté"},
}

// stamp returns a timestamp strictly after prev.
func (s *Service) stamp(prev int64) int64 {
	ts := s.now().UnixMilli()
	if ts <= prev {
		ts = prev + 1
	}
	return ts
}

// Track starts a record for number unless one exists and reports its
// latest status and timestamp.
func (s *Service) Track(ctx context.Context, number string) (string, int64, error) {
	if rec, err := s.repo.Latest(ctx, number); err == nil {
		return rec.Status, rec.LastUpdatedTime, nil
	} else if !errors.Is(err, shared.ErrorNotFound) {
		return "", 0, err
	}

	ts := s.stamp(0)
	rec := Record{
		ApplicationNumber: number,
		UCI:               fmt.Sprintf("%010d", rand.Int64N(10_000_000_000)),
		LastUpdatedTime:   ts,
		Status:            StatusInProgress,
		Actions:           []string{},
		History: []HistoryEntry{{
			Time:     ts,
			IsNew:    true,
			Type:     "milestone",
			LoadTime: ts,
			Title:    Text{EN: "Application received", FR: "Demande reçue"},
			Text:     Text{EN: "We received your application.", FR: "Nous avons reçu votre demande."},
		}},
	}
	for i, step := range Steps {
		st := StatusNotStarted
		if i == 0 {
			st = StatusInProgress
		}
		rec.Activities = append(rec.Activities, Activity{Activity: step, Order: i + 1, Status: st})
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return "", 0, err
	}
	return rec.Status, rec.LastUpdatedTime, nil
}

// Refresh simulates one portal poll: the activity in progress completes,
// the next one starts and a history entry is added. Completed records are
// returned unchanged.
func (s *Service) Refresh(ctx context.Context, number string) (string, int64, error) {
	prev, err := s.repo.Latest(ctx, number)
	if err != nil {
		return "", 0, err
	}
	if prev.Status == StatusCompleted {
		return prev.Status, prev.LastUpdatedTime, nil
	}

	rec := prev.clone()
	rec.LastUpdatedTime = s.stamp(prev.LastUpdatedTime)

	for i := range rec.History {
		rec.History[i].IsNew = false
	}

	done := ""
	for i := range rec.Activities {
		if rec.Activities[i].Status == StatusInProgress {
			rec.Activities[i].Status = StatusCompleted
			done = rec.Activities[i].Activity
			if i+1 < len(rec.Activities) {
				rec.Activities[i+1].Status = StatusInProgress
			}
			break
		}
	}
	if done == "" {
		rec.Status = StatusCompleted
	} else {
		title := stepTitles[done]
		rec.History = append([]HistoryEntry{{
			Time:     rec.LastUpdatedTime,
			IsNew:    true,
			Type:     "activity",
			Activity: done,
			LoadTime: rec.LastUpdatedTime,
			Title:    title,
			Text:     Text{EN: title.EN + ": completed.", FR: title.FR + " : terminé."},
		}}, rec.History...)
		if rec.Activities[len(rec.Activities)-1].Status == StatusCompleted {
			rec.Status = StatusCompleted
		}
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return "", 0, err
	}
	return rec.Status, rec.LastUpdatedTime, nil
}

func (s *Service) Latest(ctx context.Context, number string) (Record, error) {
	return s.repo.Latest(ctx, number)
}

func (s *Service) At(ctx context.Context, number string, ts int64) (Record, error) {
	return s.repo.At(ctx, number, ts)
}

// List returns the latest snapshot of each number; unknown numbers are
// skipped.
func (s *Service) List(ctx context.Context, numbers []string) ([]Record, error) {
	out := make([]Record, 0, len(numbers))
	for _, n := range numbers {
		rec, err := s.repo.Latest(ctx, n)
		if errors.Is(err, shared.ErrorNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

package applications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	s := NewService(NewMemoryRepository())
	fixed := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return fixed }
	return s
}

func TestTrack_CreatesInitialRecord(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	st, ts, err := s.Track(ctx, "C00000001")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)
	assert.Equal(t, int64(1_700_000_000_000), ts)

	rec, err := s.Latest(ctx, "C00000001")
	require.NoError(t, err)
	assert.Len(t, rec.UCI, 10)
	require.Len(t, rec.Activities, len(Steps))
	assert.Equal(t, StatusInProgress, rec.Activities[0].Status)
	assert.Equal(t, StatusNotStarted, rec.Activities[1].Status)
	require.Len(t, rec.History, 1)
	assert.True(t, rec.History[0].IsNew)

	again, ts2, err := s.Track(ctx, "C00000001")
	require.NoError(t, err)
	assert.Equal(t, st, again)
	assert.Equal(t, ts, ts2)
}

func TestRefresh_AdvancesAndKeepsSnapshots(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, first, err := s.Track(ctx, "C1")
	require.NoError(t, err)

	_, second, err := s.Refresh(ctx, "C1")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	rec, err := s.Latest(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, rec.Activities[0].Status)
	assert.Equal(t, StatusInProgress, rec.Activities[1].Status)
	require.Len(t, rec.History, 2)
	assert.True(t, rec.History[0].IsNew)
	assert.Equal(t, "language", rec.History[0].Activity)
	assert.False(t, rec.History[1].IsNew)

	old, err := s.At(ctx, "C1", first)
	require.NoError(t, err)
	assert.Len(t, old.History, 1)
	assert.Equal(t, StatusInProgress, old.Activities[0].Status)

	_, err = s.At(ctx, "C1", 42)
	assert.ErrorIs(t, err, shared.ErrorNotFound)
}

func TestRefresh_CompletesAfterLastStep(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, _, err := s.Track(ctx, "C1")
	require.NoError(t, err)

	var st string
	for range Steps {
		st, _, err = s.Refresh(ctx, "C1")
		require.NoError(t, err)
	}
	assert.Equal(t, StatusCompleted, st)

	rec, err := s.Latest(ctx, "C1")
	require.NoError(t, err)
	for _, a := range rec.Activities {
		assert.Equal(t, StatusCompleted, a.Status)
	}

	st, ts, err := s.Refresh(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)
	assert.Equal(t, rec.LastUpdatedTime, ts)
}

func TestRefresh_Unknown(t *testing.T) {
	_, _, err := newTestService().Refresh(context.Background(), "nope")
	assert.ErrorIs(t, err, shared.ErrorNotFound)
}

func TestList_SkipsUnknown(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, _, err := s.Track(ctx, "C1")
	require.NoError(t, err)

	recs, err := s.List(ctx, []string{"C1", "C2"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "C1", recs[0].ApplicationNumber)
}

func TestMemoryRepository_RejectsStaleSnapshot(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, Record{ApplicationNumber: "C1", LastUpdatedTime: 10}))
	assert.Error(t, repo.Append(ctx, Record{ApplicationNumber: "C1", LastUpdatedTime: 10}))
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, Record{
		ApplicationNumber: "C1",
		LastUpdatedTime:   10,
		History:           []HistoryEntry{{Time: 10, IsNew: true}},
	}))

	rec, err := repo.Latest(ctx, "C1")
	require.NoError(t, err)
	rec.History[0].IsNew = false

	again, err := repo.Latest(ctx, "C1")
	require.NoError(t, err)
	assert.True(t, again.History[0].IsNew)
}

func TestRecord_WireShape(t *testing.T) {
	s := newTestService()
	_, _, err := s.Track(context.Background(), "C1")
	require.NoError(t, err)
	rec, err := s.Latest(context.Background(), "C1")
	require.NoError(t, err)

	b, err := json.Marshal(rec)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"applicationNumber", "uci", "lastUpdatedTime", "status", "activities", "history", "actions"} {
		assert.Contains(t, m, k)
	}
	h := m["history"].([]any)[0].(map[string]any)
	for _, k := range []string{"time", "isNew", "isWaiting", "type", "activity", "loadTime", "title", "text"} {
		assert.Contains(t, h, k)
	}
}

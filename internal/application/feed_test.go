package application

import (
	"context"
	"testing"
	"time"

	"runclub/internal/domain/entities"
)

func TestUpcomingFiltersSortsAndLimits(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var events []entities.Event
	for i, offset := range []time.Duration{-time.Hour, 0, 7 * time.Hour, time.Hour, 5 * time.Hour, 3 * time.Hour, 2 * time.Hour, 6 * time.Hour} {
		events = append(events, entities.Event{ID: string(rune('a' + i)), ScheduledAt: now.Add(offset)})
	}
	svc := NewFeedService(newMemEventRepo(events...), nil, discardLogger())

	got := svc.Upcoming(context.Background(), now)

	if len(got) != UpcomingLimit {
		t.Fatalf("len = %d, want %d", len(got), UpcomingLimit)
	}
	for i, e := range got {
		if !e.ScheduledAt.After(now) {
			t.Errorf("event %s at %v is not strictly after now", e.ID, e.ScheduledAt)
		}
		if i > 0 && got[i-1].ScheduledAt.After(e.ScheduledAt) {
			t.Errorf("feed not ascending at %d", i)
		}
	}
	if got[0].ScheduledAt != now.Add(time.Hour) {
		t.Errorf("first event at %v, want %v", got[0].ScheduledAt, now.Add(time.Hour))
	}
}

func TestUpcomingFailsSoftToEmpty(t *testing.T) {
	repo := newMemEventRepo(entities.Event{ID: "e1", ScheduledAt: time.Now().Add(time.Hour)})
	repo.failRead = true
	metrics := &countingMetrics{}
	svc := NewFeedService(repo, metrics, discardLogger())

	got := svc.Upcoming(context.Background(), time.Now())

	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil feed, got %#v", got)
	}
	if metrics.feedFailures != 1 {
		t.Errorf("feed failures = %d, want 1", metrics.feedFailures)
	}
}

type countingMetrics struct {
	feedFailures int
	mutations    map[string]int
}

func (m *countingMetrics) ParticipationChanged(op string, err error) {
	if m.mutations == nil {
		m.mutations = make(map[string]int)
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutations[op+"/"+result]++
}

func (m *countingMetrics) FeedLoaded(_ int, err error) {
	if err != nil {
		m.feedFailures++
	}
}

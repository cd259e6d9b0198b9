package application

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"runclub/internal/domain"
	"runclub/internal/domain/entities"
)

func newParticipantFixture() (*ParticipantService, *memEventRepo, *countingMetrics) {
	repo := newMemEventRepo(entities.Event{
		ID:          "e1",
		CreatorID:   "owner",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	metrics := &countingMetrics{}
	return NewParticipantService(repo, metrics, discardLogger()), repo, metrics
}

func TestJoinEventIsIdempotent(t *testing.T) {
	svc, repo, _ := newParticipantFixture()
	ctx := context.Background()

	if err := svc.JoinEvent(ctx, "e1", "u1"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := svc.JoinEvent(ctx, "e1", "u1"); err != nil {
		t.Fatalf("second join: %v", err)
	}
	if got := repo.participants("e1"); !slices.Equal(got, []string{"u1"}) {
		t.Fatalf("participants = %v, want [u1]", got)
	}
}

func TestLeaveThenJoinRestoresMember(t *testing.T) {
	ctx := context.Background()
	for _, initiallyJoined := range []bool{false, true} {
		svc, repo, _ := newParticipantFixture()
		if initiallyJoined {
			if err := svc.JoinEvent(ctx, "e1", "u1"); err != nil {
				t.Fatal(err)
			}
		}
		if err := svc.LeaveEvent(ctx, "e1", "u1"); err != nil {
			t.Fatalf("leave: %v", err)
		}
		if err := svc.JoinEvent(ctx, "e1", "u1"); err != nil {
			t.Fatalf("join: %v", err)
		}
		if got := repo.participants("e1"); !slices.Contains(got, "u1") {
			t.Errorf("initiallyJoined=%v: participants = %v", initiallyJoined, got)
		}
	}
}

func TestParticipationRejections(t *testing.T) {
	tests := []struct {
		name    string
		eventID string
		userID  string
		want    error
	}{
		{"creator", "e1", "owner", domain.ErrCreatorParticipation},
		{"unknown event", "nope", "u1", domain.ErrEventNotFound},
		{"anonymous", "e1", "", domain.ErrUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newParticipantFixture()
			ctx := context.Background()
			if err := svc.JoinEvent(ctx, tt.eventID, tt.userID); !errors.Is(err, tt.want) {
				t.Errorf("join err = %v, want %v", err, tt.want)
			}
			if err := svc.LeaveEvent(ctx, tt.eventID, tt.userID); !errors.Is(err, tt.want) {
				t.Errorf("leave err = %v, want %v", err, tt.want)
			}
			if repo.writes != 0 {
				t.Errorf("store written %d times", repo.writes)
			}
		})
	}
}

func TestParticipationMetrics(t *testing.T) {
	svc, repo, metrics := newParticipantFixture()
	ctx := context.Background()
	_ = svc.JoinEvent(ctx, "e1", "u1")
	repo.failWrite = true
	_ = svc.LeaveEvent(ctx, "e1", "u1")

	if metrics.mutations["join/ok"] != 1 || metrics.mutations["leave/error"] != 1 {
		t.Errorf("mutations = %v", metrics.mutations)
	}
}

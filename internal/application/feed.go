package application

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"runclub/internal/domain/entities"
	"runclub/internal/ports/output"
)

// UpcomingLimit is the maximum number of runs shown in the feed.
const UpcomingLimit = 5

type FeedService struct {
	eventRepo output.EventRepository
	metrics   output.Metrics
	logger    *slog.Logger
}

func NewFeedService(eventRepo output.EventRepository, metrics output.Metrics, logger *slog.Logger) *FeedService {
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	return &FeedService{
		eventRepo: eventRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Upcoming returns at most UpcomingLimit events scheduled strictly after now,
// earliest first. Retrieval failures are logged and yield an empty feed.
func (s *FeedService) Upcoming(ctx context.Context, now time.Time) []entities.Event {
	events, err := s.eventRepo.FindUpcoming(ctx, now, UpcomingLimit)
	s.metrics.FeedLoaded(len(events), err)
	if err != nil {
		s.logger.Error("Error fetching events", "error", err)
		return []entities.Event{}
	}
	return normalizeFeed(events, now)
}

func normalizeFeed(events []entities.Event, now time.Time) []entities.Event {
	out := make([]entities.Event, 0, min(len(events), UpcomingLimit))
	for _, e := range events {
		if e.ScheduledAt.After(now) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b entities.Event) int {
		return a.ScheduledAt.Compare(b.ScheduledAt)
	})
	if len(out) > UpcomingLimit {
		out = out[:UpcomingLimit]
	}
	return out
}

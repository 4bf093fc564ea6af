package service

import (
	"context"
	"sync"

	"studylog_backend/internal/config"
	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	FeedTabActivity = "activity"
	FeedTabGoals    = "goals"
)

// Feed is the timeline payload. Records is populated on the activity tab,
// Goals on the goals tab.
type Feed struct {
	Records []EnrichedRecord `json:"records"`
	Goals   []EnrichedGoal   `json:"goals"`
}

type FeedService struct {
	records  *repository.StudyRecordRepository
	goals    *repository.GoalRepository
	follows  *repository.FollowRepository
	enricher *EnrichmentService

	mu  sync.RWMutex
	cfg config.FeedConfig
}

func NewFeedService(records *repository.StudyRecordRepository, goals *repository.GoalRepository, follows *repository.FollowRepository, enricher *EnrichmentService, cfg config.FeedConfig) *FeedService {
	return &FeedService{records: records, goals: goals, follows: follows, enricher: enricher, cfg: cfg}
}

// UpdateLimits applies reloaded fetch limits without a restart.
func (s *FeedService) UpdateLimits(cfg config.FeedConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// GetFeed builds the timeline for a viewer. viewerID is nil for guests,
// who see the unfiltered recent window. On the activity tab the record
// fetch and the followed-set fetch run concurrently and the first error
// cancels the other; the goals tab is everyone's goals, unfiltered.
func (s *FeedService) GetFeed(ctx context.Context, viewerID *uint, tab string) (*Feed, error) {
	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()

	if tab == FeedTabGoals {
		goals, err := s.goals.FindRecent(ctx, cfg.GoalLimit)
		if err != nil {
			return nil, err
		}
		_, enrichedGoals, err := s.enricher.EnrichFeed(ctx, nil, goals)
		if err != nil {
			return nil, err
		}
		return &Feed{Goals: enrichedGoals}, nil
	}

	var (
		records  []model.StudyRecord
		followed []uint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.records.FindRecent(gctx, cfg.RecordLimit)
		return err
	})
	if viewerID != nil {
		id := *viewerID
		g.Go(func() error {
			var err error
			followed, err = s.follows.FollowingIDsCached(gctx, id)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if viewerID != nil {
		records = FilterByAudience(records, *viewerID, followed)
	}

	enrichedRecords, _, err := s.enricher.EnrichFeed(ctx, records, nil)
	if err != nil {
		return nil, err
	}
	return &Feed{Records: enrichedRecords}, nil
}

// FilterByAudience keeps records owned by the viewer or someone the viewer
// follows, preserving order. A viewer who follows nobody gets the
// unfiltered batch back, so a fresh account still sees a populated feed.
func FilterByAudience(records []model.StudyRecord, viewerID uint, followed []uint) []model.StudyRecord {
	if len(followed) == 0 {
		return records
	}
	audience := make(map[uint]bool, len(followed)+1)
	for _, id := range followed {
		audience[id] = true
	}
	audience[viewerID] = true

	filtered := make([]model.StudyRecord, 0, len(records))
	for _, r := range records {
		if audience[r.UserID] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

package service

import (
	"context"
	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
	"studylog_backend/pkg/monitoring"
)

// MaterialLookup resolves cover images for a set of exact material names.
type MaterialLookup interface {
	ImagesByName(ctx context.Context, names []string) (map[string]string, error)
}

// ProfileLookup resolves display metadata for a set of user ids.
type ProfileLookup interface {
	DisplayByID(ctx context.Context, userIDs []uint) (map[uint]repository.ProfileDisplay, error)
}

// EnrichedRecord is a study record plus the display metadata the feed
// shows. The pointers stay nil on a lookup miss; the material image in
// particular is a best-effort exact-name match, not a foreign key.
type EnrichedRecord struct {
	model.StudyRecord
	MaterialImage   *string `json:"materialImage"`
	UserDisplayName *string `json:"userDisplayName"`
	UserAvatarURL   *string `json:"userAvatarUrl"`
}

type EnrichedGoal struct {
	model.Goal
	UserDisplayName *string `json:"userDisplayName"`
	UserAvatarURL   *string `json:"userAvatarUrl"`
}

// EnrichmentService attaches display metadata to feed batches with at most
// two queries per batch: one IN-set lookup on materials, one on profiles.
// Without the batching a 50-record feed would cost 100+ round trips.
type EnrichmentService struct {
	Materials MaterialLookup
	Profiles  ProfileLookup
}

func NewEnrichmentService(materials MaterialLookup, profiles ProfileLookup) *EnrichmentService {
	return &EnrichmentService{Materials: materials, Profiles: profiles}
}

// EnrichFeed enriches records and goals together so the profile lookup is
// shared. Empty key sets issue no query at all.
func (s *EnrichmentService) EnrichFeed(ctx context.Context, records []model.StudyRecord, goals []model.Goal) ([]EnrichedRecord, []EnrichedGoal, error) {
	subjects := distinctSubjects(records)
	userIDs := distinctOwners(records, goals)

	images := map[string]string{}
	if len(subjects) > 0 {
		var err error
		images, err = s.Materials.ImagesByName(ctx, subjects)
		if err != nil {
			return nil, nil, err
		}
		monitoring.EnrichmentQueries.WithLabelValues("materials").Inc()
	}

	displays := map[uint]repository.ProfileDisplay{}
	if len(userIDs) > 0 {
		var err error
		displays, err = s.Profiles.DisplayByID(ctx, userIDs)
		if err != nil {
			return nil, nil, err
		}
		monitoring.EnrichmentQueries.WithLabelValues("profiles").Inc()
	}

	enrichedRecords := make([]EnrichedRecord, len(records))
	for i, r := range records {
		er := EnrichedRecord{StudyRecord: r}
		if image, ok := images[r.Subject]; ok {
			er.MaterialImage = &image
		}
		er.UserDisplayName, er.UserAvatarURL = displayFields(displays, r.UserID)
		enrichedRecords[i] = er
	}

	enrichedGoals := make([]EnrichedGoal, len(goals))
	for i, g := range goals {
		eg := EnrichedGoal{Goal: g}
		eg.UserDisplayName, eg.UserAvatarURL = displayFields(displays, g.UserID)
		enrichedGoals[i] = eg
	}

	return enrichedRecords, enrichedGoals, nil
}

// EnrichRecord is the single-row variant used by the record detail view.
func (s *EnrichmentService) EnrichRecord(ctx context.Context, record model.StudyRecord) (EnrichedRecord, error) {
	enriched, _, err := s.EnrichFeed(ctx, []model.StudyRecord{record}, nil)
	if err != nil {
		return EnrichedRecord{}, err
	}
	return enriched[0], nil
}

func displayFields(displays map[uint]repository.ProfileDisplay, userID uint) (*string, *string) {
	d, ok := displays[userID]
	if !ok {
		return nil, nil
	}
	var name, avatar *string
	if d.DisplayName != "" {
		v := d.DisplayName
		name = &v
	}
	if d.AvatarURL != "" {
		v := d.AvatarURL
		avatar = &v
	}
	return name, avatar
}

func distinctSubjects(records []model.StudyRecord) []string {
	seen := make(map[string]bool, len(records))
	subjects := make([]string, 0, len(records))
	for _, r := range records {
		if r.Subject == "" || seen[r.Subject] {
			continue
		}
		seen[r.Subject] = true
		subjects = append(subjects, r.Subject)
	}
	return subjects
}

func distinctOwners(records []model.StudyRecord, goals []model.Goal) []uint {
	seen := make(map[uint]bool, len(records)+len(goals))
	ids := make([]uint, 0, len(records)+len(goals))
	for _, r := range records {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	for _, g := range goals {
		if !seen[g.UserID] {
			seen[g.UserID] = true
			ids = append(ids, g.UserID)
		}
	}
	return ids
}

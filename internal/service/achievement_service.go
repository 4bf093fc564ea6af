package service

import (
	"context"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
	"studylog_backend/internal/util"
)

type AchievementRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	AchievementDate string `json:"achievementDate"`
}

type EnrichedAchievement struct {
	model.Achievement
	UserDisplayName *string `json:"userDisplayName"`
	UserAvatarURL   *string `json:"userAvatarUrl"`
}

type AchievementService struct {
	Achievements *repository.AchievementRepository
	Profiles     ProfileLookup
}

func NewAchievementService(achievements *repository.AchievementRepository, profiles ProfileLookup) *AchievementService {
	return &AchievementService{Achievements: achievements, Profiles: profiles}
}

func (s *AchievementService) Create(ctx context.Context, userID uint, req AchievementRequest) (*model.Achievement, error) {
	achievement := &model.Achievement{
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		AchievementDate: req.AchievementDate,
	}
	if err := s.Achievements.Create(achievement); err != nil {
		return nil, err
	}
	return achievement, nil
}

// ListRecent returns the shared achievement wall, newest first, with the
// same batched profile enrichment the feed uses.
func (s *AchievementService) ListRecent(ctx context.Context, limit int) ([]EnrichedAchievement, error) {
	achievements, err := s.Achievements.FindRecent(limit)
	if err != nil {
		return nil, err
	}

	displays := map[uint]repository.ProfileDisplay{}
	if len(achievements) > 0 {
		ids := make([]uint, 0, len(achievements))
		seen := make(map[uint]bool, len(achievements))
		for _, a := range achievements {
			if !seen[a.UserID] {
				seen[a.UserID] = true
				ids = append(ids, a.UserID)
			}
		}
		displays, err = s.Profiles.DisplayByID(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	enriched := make([]EnrichedAchievement, len(achievements))
	for i, a := range achievements {
		ea := EnrichedAchievement{Achievement: a}
		ea.UserDisplayName, ea.UserAvatarURL = displayFields(displays, a.UserID)
		enriched[i] = ea
	}
	return enriched, nil
}

func (s *AchievementService) Delete(ctx context.Context, id, userID uint) error {
	affected, err := s.Achievements.DeleteByIDAndUserID(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrAchievementNotFound
	}
	return nil
}

package service

import (
	"context"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
	"studylog_backend/internal/util"

	"gorm.io/gorm"
)

type FollowService struct {
	Follows  *repository.FollowRepository
	Profiles *repository.ProfileRepository
	Users    *repository.UserRepository
}

func NewFollowService(follows *repository.FollowRepository, profiles *repository.ProfileRepository, users *repository.UserRepository) *FollowService {
	return &FollowService{Follows: follows, Profiles: profiles, Users: users}
}

// Follow creates a directed edge. Following yourself or someone you
// already follow is rejected; the edge is asymmetric, so no reciprocal
// row is created.
func (s *FollowService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return util.ErrSelfFollow
	}
	if _, err := s.Users.FindByID(followingID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrUserNotFound
		}
		return err
	}

	exists, err := s.Follows.Exists(followerID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrAlreadyFollowing
	}

	return s.Follows.Create(ctx, &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	})
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	affected, err := s.Follows.Delete(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}

func (s *FollowService) IsFollowing(followerID, followingID uint) (bool, error) {
	return s.Follows.Exists(followerID, followingID)
}

// Following lists the profiles of everyone the user follows, one batched
// query for the ids and one for the profiles.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]model.Profile, error) {
	ids, err := s.Follows.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Profiles.FindByUserIDs(ctx, ids)
}

package repository

import (
	"context"
	"errors"
	"studylog_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

// GetOrCreate returns the user's profile, creating an empty row on first
// access.
func (r *ProfileRepository) GetOrCreate(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = model.Profile{UserID: userID}
		if err := r.DB.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *ProfileRepository) Update(profile *model.Profile) error {
	return r.DB.Model(&model.Profile{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]interface{}{
			"display_name":     profile.DisplayName,
			"bio":              profile.Bio,
			"gender":           profile.Gender,
			"birth_year":       profile.BirthYear,
			"birthday":         profile.Birthday,
			"prefecture":       profile.Prefecture,
			"grade":            profile.Grade,
			"high_school":      profile.HighSchool,
			"university":       profile.University,
			"follower_message": profile.FollowerMessage,
		}).Error
}

func (r *ProfileRepository) UpdateAvatar(userID uint, avatarURL string) error {
	return r.DB.Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("avatar_url", avatarURL).Error
}

// ProfileDisplay is the slice of a profile the feed needs.
type ProfileDisplay struct {
	DisplayName string
	AvatarURL   string
}

// DisplayByID resolves display name and avatar for a set of users in a
// single query.
func (r *ProfileRepository) DisplayByID(ctx context.Context, userIDs []uint) (map[uint]ProfileDisplay, error) {
	displays := make(map[uint]ProfileDisplay, len(userIDs))
	if len(userIDs) == 0 {
		return displays, nil
	}

	var profiles []model.Profile
	err := r.DB.WithContext(ctx).
		Select("user_id", "display_name", "avatar_url").
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	for _, p := range profiles {
		displays[p.UserID] = ProfileDisplay{
			DisplayName: p.DisplayName,
			AvatarURL:   p.AvatarURL,
		}
	}
	return displays, nil
}

// FindByUserIDs loads full profiles for a set of users in one query.
func (r *ProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uint) ([]model.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []model.Profile
	err := r.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) SearchByDisplayName(query string, limit int) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.DB.Where("display_name LIKE ?", "%"+query+"%").Limit(limit).Find(&profiles).Error
	return profiles, err
}

package repository

import (
	"studylog_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	return r.DB.Create(achievement).Error
}

// FindRecent lists everyone's reports newest first.
func (r *AchievementRepository) FindRecent(limit int) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) DeleteByIDAndUserID(id, userID uint) (int64, error) {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Achievement{})
	return result.RowsAffected, result.Error
}

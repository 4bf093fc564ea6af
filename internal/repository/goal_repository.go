package repository

import (
	"context"
	"studylog_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Model(&model.Goal{}).
		Where("id = ?", goal.ID).
		Updates(map[string]interface{}{
			"title":       goal.Title,
			"description": goal.Description,
			"target_date": goal.TargetDate,
			"updated_at":  time.Now(),
		}).Error
}

func (r *GoalRepository) FindByID(id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.First(&goal, id).Error
	return &goal, err
}

func (r *GoalRepository) FindByIDAndUserID(id, userID uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	return &goal, err
}

// FindByUserID lists one user's goals by target date for the timeline view.
func (r *GoalRepository) FindByUserID(userID uint) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("user_id = ?", userID).Order("target_date").Find(&goals).Error
	return goals, err
}

// FindRecent returns the newest goals across all users for the feed.
func (r *GoalRepository) FindRecent(ctx context.Context, limit int) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) DeleteByIDAndUserID(id, userID uint) (int64, error) {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Goal{})
	return result.RowsAffected, result.Error
}

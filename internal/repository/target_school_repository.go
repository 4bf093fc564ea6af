package repository

import (
	"studylog_backend/internal/model"

	"gorm.io/gorm"
)

type TargetSchoolRepository struct {
	DB *gorm.DB
}

func NewTargetSchoolRepository(db *gorm.DB) *TargetSchoolRepository {
	return &TargetSchoolRepository{DB: db}
}

func (r *TargetSchoolRepository) Create(school *model.TargetSchool) error {
	return r.DB.Create(school).Error
}

func (r *TargetSchoolRepository) FindByUserID(userID uint) ([]model.TargetSchool, error) {
	var schools []model.TargetSchool
	err := r.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&schools).Error
	return schools, err
}

func (r *TargetSchoolRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TargetSchool{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *TargetSchoolRepository) DeleteByIDAndUserID(id, userID uint) (int64, error) {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.TargetSchool{})
	return result.RowsAffected, result.Error
}

package repository

import (
	"context"
	"studylog_backend/internal/model"

	"gorm.io/gorm"
)

// StudyRecordRepository handles study session rows.

type StudyRecordRepository struct {
	DB *gorm.DB
}

func NewStudyRecordRepository(db *gorm.DB) *StudyRecordRepository {
	return &StudyRecordRepository{DB: db}
}

func (r *StudyRecordRepository) Create(record *model.StudyRecord) error {
	return r.DB.Create(record).Error
}

func (r *StudyRecordRepository) FindByID(id uint) (*model.StudyRecord, error) {
	var record model.StudyRecord
	err := r.DB.First(&record, id).Error
	return &record, err
}

// FindRecent returns the newest records across all users for the feed.
func (r *StudyRecordRepository) FindRecent(ctx context.Context, limit int) ([]model.StudyRecord, error) {
	var records []model.StudyRecord
	err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// FindByUserID returns the user's newest records, capped.
func (r *StudyRecordRepository) FindByUserID(userID uint, limit int) ([]model.StudyRecord, error) {
	var records []model.StudyRecord
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// FindAllByUserID returns every record of one user, newest first. The
// report view reduces over the full set client-side, so no limit here.
func (r *StudyRecordRepository) FindAllByUserID(userID uint) ([]model.StudyRecord, error) {
	var records []model.StudyRecord
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// DeleteByIDAndUserID removes the record only when it belongs to the user.
// The affected-row count distinguishes "not yours" from "gone".
func (r *StudyRecordRepository) DeleteByIDAndUserID(id, userID uint) (int64, error) {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.StudyRecord{})
	return result.RowsAffected, result.Error
}

func (r *StudyRecordRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.StudyRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

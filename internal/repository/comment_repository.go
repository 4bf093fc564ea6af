package repository

import (
	"studylog_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

// FindByRecordID lists a record's comments oldest first.
func (r *CommentRepository) FindByRecordID(recordID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Where("record_id = ?", recordID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// DeleteByRecordID removes a record's comments when the record goes away.
func (r *CommentRepository) DeleteByRecordID(recordID uint) error {
	return r.DB.Where("record_id = ?", recordID).Delete(&model.Comment{}).Error
}

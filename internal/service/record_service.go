package service

import (
	"context"
	"fmt"
	"strings"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
	"studylog_backend/internal/util"

	"gorm.io/gorm"
)

type CreateRecordRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1"`
	Date     string `json:"date" binding:"required"`
	Notes    string `json:"notes"`
	Amount   string `json:"amount"`
}

// RecordDetail is the record page payload: the enriched record plus its
// comment thread.
type RecordDetail struct {
	EnrichedRecord
	Comments []model.Comment `json:"comments"`
}

type RecordService struct {
	Records  *repository.StudyRecordRepository
	Comments *repository.CommentRepository
	Enricher *EnrichmentService
}

func NewRecordService(records *repository.StudyRecordRepository, comments *repository.CommentRepository, enricher *EnrichmentService) *RecordService {
	return &RecordService{Records: records, Comments: comments, Enricher: enricher}
}

// Create saves a study record. A non-empty amount ("p.12-34", "30問" and
// the like) is stored as the record's first comment with the 学習量 prefix,
// which is how the feed renders it.
func (s *RecordService) Create(ctx context.Context, userID uint, req CreateRecordRequest) (*model.StudyRecord, error) {
	record := &model.StudyRecord{
		UserID:   userID,
		Subject:  strings.TrimSpace(req.Subject),
		Duration: req.Duration,
		Date:     req.Date,
		Notes:    req.Notes,
	}
	if err := s.Records.Create(record); err != nil {
		return nil, err
	}

	if amount := strings.TrimSpace(req.Amount); amount != "" {
		comment := &model.Comment{
			RecordID: record.ID,
			UserID:   userID,
			Content:  fmt.Sprintf("[学習量: %s]", amount),
		}
		if err := s.Comments.Create(comment); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func (s *RecordService) GetDetail(ctx context.Context, id uint) (*RecordDetail, error) {
	record, err := s.Records.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrRecordNotFound
		}
		return nil, err
	}

	enriched, err := s.Enricher.EnrichRecord(ctx, *record)
	if err != nil {
		return nil, err
	}

	comments, err := s.Comments.FindByRecordID(id)
	if err != nil {
		return nil, err
	}
	return &RecordDetail{EnrichedRecord: enriched, Comments: comments}, nil
}

func (s *RecordService) ListByUser(userID uint, limit int) ([]model.StudyRecord, error) {
	return s.Records.FindByUserID(userID, limit)
}

// Delete removes a record the caller owns, together with its comments.
// A record owned by someone else is reported as a permission error, not
// a missing row.
func (s *RecordService) Delete(ctx context.Context, id, userID uint) error {
	affected, err := s.Records.DeleteByIDAndUserID(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.Records.FindByID(id); err == gorm.ErrRecordNotFound {
			return util.ErrRecordNotFound
		}
		return util.ErrPermissionDenied
	}
	return s.Comments.DeleteByRecordID(id)
}

// AddComment appends to a record's thread. Any signed-in user may
// comment; comments cannot be edited afterwards.
func (s *RecordService) AddComment(ctx context.Context, recordID, userID uint, content string) (*model.Comment, error) {
	if _, err := s.Records.FindByID(recordID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrRecordNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		RecordID: recordID,
		UserID:   userID,
		Content:  content,
	}
	if err := s.Comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

package service

import (
	"context"
	"time"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
	"studylog_backend/internal/util"

	"gorm.io/gorm"
)

type GoalRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	TargetDate  *time.Time `json:"targetDate"`
}

type GoalService struct {
	Goals *repository.GoalRepository
}

func NewGoalService(goals *repository.GoalRepository) *GoalService {
	return &GoalService{Goals: goals}
}

func (s *GoalService) Create(ctx context.Context, userID uint, req GoalRequest) (*model.Goal, error) {
	goal := &model.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
	}
	if err := s.Goals.Create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) ListByUser(userID uint) ([]model.Goal, error) {
	return s.Goals.FindByUserID(userID)
}

func (s *GoalService) Update(ctx context.Context, id, userID uint, req GoalRequest) (*model.Goal, error) {
	goal, err := s.ownedGoal(id, userID)
	if err != nil {
		return nil, err
	}

	goal.Title = req.Title
	goal.Description = req.Description
	goal.TargetDate = req.TargetDate
	if err := s.Goals.Update(goal); err != nil {
		return nil, err
	}
	return s.Goals.FindByID(goal.ID)
}

func (s *GoalService) Delete(ctx context.Context, id, userID uint) error {
	affected, err := s.Goals.DeleteByIDAndUserID(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.Goals.FindByID(id); err == gorm.ErrRecordNotFound {
			return util.ErrGoalNotFound
		}
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *GoalService) ownedGoal(id, userID uint) (*model.Goal, error) {
	goal, err := s.Goals.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}
	if goal.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return goal, nil
}

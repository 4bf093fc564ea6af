package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
	"studylog_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxTargetSchools = 6

type UpdateProfileRequest struct {
	DisplayName     string `json:"displayName"`
	Bio             string `json:"bio"`
	Gender          string `json:"gender"`
	BirthYear       string `json:"birthYear"`
	Birthday        string `json:"birthday"`
	Prefecture      string `json:"prefecture"`
	Grade           string `json:"grade"`
	HighSchool      string `json:"highSchool"`
	University      string `json:"university"`
	FollowerMessage string `json:"followerMessage"`
}

// UserPage is the public profile view: display fields, target schools and
// the follow counters.
type UserPage struct {
	Profile       *model.Profile       `json:"profile"`
	TargetSchools []model.TargetSchool `json:"targetSchools"`
	Followers     int64                `json:"followers"`
	Following     int64                `json:"following"`
	RecordCount   int64                `json:"recordCount"`
	IsFollowing   bool                 `json:"isFollowing"`
}

type ProfileService struct {
	Profiles *repository.ProfileRepository
	Schools  *repository.TargetSchoolRepository
	Follows  *repository.FollowRepository
	Records  *repository.StudyRecordRepository
	Storage  *StorageService
}

func NewProfileService(profiles *repository.ProfileRepository, schools *repository.TargetSchoolRepository, follows *repository.FollowRepository, records *repository.StudyRecordRepository, storage *StorageService) *ProfileService {
	return &ProfileService{Profiles: profiles, Schools: schools, Follows: follows, Records: records, Storage: storage}
}

// GetOwn returns the caller's profile, creating an empty row on first
// visit so the edit form always has something to load.
func (s *ProfileService) GetOwn(ctx context.Context, userID uint) (*model.Profile, error) {
	return s.Profiles.GetOrCreate(userID)
}

func (s *ProfileService) Update(ctx context.Context, userID uint, req UpdateProfileRequest) (*model.Profile, error) {
	if _, err := s.Profiles.GetOrCreate(userID); err != nil {
		return nil, err
	}
	profile := &model.Profile{
		UserID:          userID,
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		Gender:          req.Gender,
		BirthYear:       req.BirthYear,
		Birthday:        req.Birthday,
		Prefecture:      req.Prefecture,
		Grade:           req.Grade,
		HighSchool:      req.HighSchool,
		University:      req.University,
		FollowerMessage: req.FollowerMessage,
	}
	if err := s.Profiles.Update(profile); err != nil {
		return nil, err
	}
	return s.Profiles.FindByUserID(userID)
}

func (s *ProfileService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	contentType, err := util.ValidateMimeType(bytes.NewReader(data), []string{"image/"})
	if err != nil {
		return "", fmt.Errorf("画像ファイルをアップロードしてください")
	}

	if _, err := s.Profiles.GetOrCreate(userID); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("avatars/%d/%s", userID, uuid.New().String())
	url := s.Storage.UploadImage(ctx, filename, data, contentType)
	if err := s.Profiles.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// GetUserPage assembles another user's public page. viewerID is nil for
// guests, who always see IsFollowing=false.
func (s *ProfileService) GetUserPage(ctx context.Context, userID uint, viewerID *uint) (*UserPage, error) {
	profile, err := s.Profiles.FindByUserID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	schools, err := s.Schools.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.Follows.FollowerCount(userID)
	if err != nil {
		return nil, err
	}
	following, err := s.Follows.FollowingCount(userID)
	if err != nil {
		return nil, err
	}
	recordCount, err := s.Records.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	page := &UserPage{
		Profile:       profile,
		TargetSchools: schools,
		Followers:     followers,
		Following:     following,
		RecordCount:   recordCount,
	}
	if viewerID != nil && *viewerID != userID {
		page.IsFollowing, err = s.Follows.Exists(*viewerID, userID)
		if err != nil {
			return nil, err
		}
	}
	return page, nil
}

func (s *ProfileService) SearchUsers(name string, limit int) ([]model.Profile, error) {
	return s.Profiles.SearchByDisplayName(name, limit)
}

func (s *ProfileService) ListTargetSchools(userID uint) ([]model.TargetSchool, error) {
	return s.Schools.FindByUserID(userID)
}

// AddTargetSchool appends a school up to the fixed cap. The slots are
// ordered by insertion, mirroring the numbered list on the profile page.
func (s *ProfileService) AddTargetSchool(ctx context.Context, userID uint, schoolName, faculty string) (*model.TargetSchool, error) {
	count, err := s.Schools.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if count >= maxTargetSchools {
		return nil, util.ErrTargetSchoolLimit
	}

	school := &model.TargetSchool{UserID: userID, SchoolName: schoolName, Faculty: faculty}
	if err := s.Schools.Create(school); err != nil {
		return nil, err
	}
	return school, nil
}

func (s *ProfileService) DeleteTargetSchool(ctx context.Context, id, userID uint) error {
	affected, err := s.Schools.DeleteByIDAndUserID(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrPermissionDenied
	}
	return nil
}

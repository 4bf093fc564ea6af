package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"studylog_backend/internal/model"
	"studylog_backend/internal/repository"
	"studylog_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxMaterialNameLen = 20

type MaterialService struct {
	Materials *repository.MaterialRepository
	Storage   *StorageService
}

func NewMaterialService(materials *repository.MaterialRepository, storage *StorageService) *MaterialService {
	return &MaterialService{Materials: materials, Storage: storage}
}

// Create registers a material. The name is the join key the feed uses to
// attach cover images to study records, so it is trimmed but otherwise
// stored verbatim.
func (s *MaterialService) Create(ctx context.Context, userID uint, name string, file *multipart.FileHeader) (*model.Material, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("教材名を入力してください")
	}
	if utf8.RuneCountInString(name) > maxMaterialNameLen {
		return nil, fmt.Errorf("教材名は%d文字以内で入力してください", maxMaterialNameLen)
	}

	material := &model.Material{
		UserID: userID,
		Name:   name,
	}

	if file != nil {
		image, err := s.uploadImage(ctx, userID, file)
		if err != nil {
			return nil, err
		}
		material.Image = image
	}

	if err := s.Materials.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *MaterialService) uploadImage(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
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

	filename := fmt.Sprintf("materials/%d/%s", userID, uuid.New().String())
	return s.Storage.UploadImage(ctx, filename, data, contentType), nil
}

func (s *MaterialService) List(limit int) ([]model.Material, error) {
	return s.Materials.FindRecent(limit)
}

func (s *MaterialService) Search(name string, limit int) ([]model.Material, error) {
	return s.Materials.SearchByName(name, limit)
}

func (s *MaterialService) Delete(ctx context.Context, id, userID uint) error {
	affected, err := s.Materials.DeleteByIDAndUserID(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := s.Materials.FindByID(id); err == gorm.ErrRecordNotFound {
			return util.ErrMaterialNotFound
		}
		return util.ErrPermissionDenied
	}
	return nil
}

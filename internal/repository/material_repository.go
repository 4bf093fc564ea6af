package repository

import (
	"context"
	"studylog_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	err := r.DB.First(&material, id).Error
	return &material, err
}

// FindRecent lists materials newest first. Materials are global, not
// scoped to the creating user.
func (r *MaterialRepository) FindRecent(limit int) ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.Order("created_at DESC").Limit(limit).Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) SearchByName(query string, limit int) ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.Where("name LIKE ?", "%"+query+"%").Limit(limit).Find(&materials).Error
	return materials, err
}

// ImagesByName resolves cover images for a set of exact names in a single
// query. Names share the table with no uniqueness constraint; when several
// materials carry the same name the first scanned row wins, which matches
// the best-effort contract of the subject join.
func (r *MaterialRepository) ImagesByName(ctx context.Context, names []string) (map[string]string, error) {
	images := make(map[string]string, len(names))
	if len(names) == 0 {
		return images, nil
	}

	var materials []model.Material
	err := r.DB.WithContext(ctx).
		Select("name", "image").
		Where("name IN ?", names).
		Find(&materials).Error
	if err != nil {
		return nil, err
	}

	for _, m := range materials {
		if _, ok := images[m.Name]; !ok && m.Image != "" {
			images[m.Name] = m.Image
		}
	}
	return images, nil
}

func (r *MaterialRepository) DeleteByIDAndUserID(id, userID uint) (int64, error) {
	result := r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Material{})
	return result.RowsAffected, result.Error
}

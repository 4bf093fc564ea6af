package model

// Material is a named study resource shared across all users. Name is NOT
// unique: StudyRecord.Subject joins against it by exact string match,
// best-effort. Image holds either a storage URL or, when the upload fell
// back, an inline data URL.
type Material struct {
	BaseModel
	UserID uint   `gorm:"index;not null" json:"userId"`
	Name   string `gorm:"size:255;not null;index" json:"name"`
	Image  string `gorm:"type:text" json:"image"`
}

func (Material) TableName() string {
	return "materials"
}

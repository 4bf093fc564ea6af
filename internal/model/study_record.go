package model

// StudyRecord is one logged study session. Subject is free text that doubles
// as a loose join key against Material.Name; Date is kept as the string the
// client sent (the recording UI writes either ISO dates or 日本語 formats),
// so every consumer must parse it defensively.
type StudyRecord struct {
	BaseModel
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Subject  string `gorm:"size:255;not null" json:"subject"`
	Duration int    `gorm:"not null;default:0" json:"duration"` // minutes
	Date     string `gorm:"size:64" json:"date"`
	Notes    string `gorm:"type:text" json:"notes"`
}

func (StudyRecord) TableName() string {
	return "study_records"
}

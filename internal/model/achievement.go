package model

// Achievement is a user-posted milestone, broadcast to everyone.
type Achievement struct {
	BaseModel
	UserID          uint   `gorm:"index;not null" json:"userId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	AchievementDate string `gorm:"size:16" json:"achievementDate"` // yyyy-mm-dd
}

func (Achievement) TableName() string {
	return "achievements"
}

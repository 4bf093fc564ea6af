package model

import "time"

type Goal struct {
	BaseModel
	UserID      uint       `gorm:"index;not null" json:"userId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	TargetDate  *time.Time `json:"targetDate"` // nil means no target date line
}

func (Goal) TableName() string {
	return "goals"
}

package model

// Comment is an append-only reply on a study record. Comments are never
// edited and are not deletable on their own; they go away with the record.
type Comment struct {
	BaseModel
	RecordID uint   `gorm:"index;not null" json:"recordId"`
	UserID   uint   `gorm:"index;not null" json:"userId"`
	Content  string `gorm:"type:text;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}

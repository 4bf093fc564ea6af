package model

// Profile holds the denormalized display attributes for one user. A row is
// created lazily the first time the profile is read.
type Profile struct {
	BaseModel
	UserID          uint   `gorm:"uniqueIndex;not null" json:"userId"`
	DisplayName     string `gorm:"size:100" json:"displayName"`
	Bio             string `gorm:"size:500" json:"bio"`
	AvatarURL       string `gorm:"type:text" json:"avatarUrl"`
	Gender          string `gorm:"size:20" json:"gender"`
	BirthYear       string `gorm:"size:8" json:"birthYear"`
	Birthday        string `gorm:"size:16" json:"birthday"`
	Prefecture      string `gorm:"size:32" json:"prefecture"`
	Grade           string `gorm:"size:32" json:"grade"`
	HighSchool      string `gorm:"size:100" json:"highSchool"`
	University      string `gorm:"size:100" json:"university"`
	FollowerMessage string `gorm:"size:500" json:"followerMessage"`
}

func (Profile) TableName() string {
	return "profiles"
}

// TargetSchool is an aspirational-institution entry, bounded per profile.
type TargetSchool struct {
	BaseModel
	UserID     uint   `gorm:"index;not null" json:"userId"`
	SchoolName string `gorm:"size:100;not null" json:"schoolName"`
	Faculty    string `gorm:"size:100" json:"faculty"`
}

func (TargetSchool) TableName() string {
	return "target_schools"
}

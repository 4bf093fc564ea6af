package model

import "time"

// Follow is a directed edge: follower watches following. The composite
// primary key keeps the "at most one edge per ordered pair" invariant in
// the schema itself.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey" json:"followerId"`
	FollowingID uint      `gorm:"primaryKey" json:"followingId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Follow) TableName() string {
	return "follows"
}

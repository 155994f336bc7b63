package models

import "time"

// Follow is a directed edge meaning "UserID receives AuthorID's posts in
// their subscription feed".
//
// Both invariants are enforced at the storage level: the pair is unique and
// a user cannot follow themselves. The application-layer get-or-create is
// best effort only; under concurrent follows the unique index is the
// authoritative guard.
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_pair;check:chk_no_self_follow,user_id <> author_id" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}

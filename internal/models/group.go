package models

import "time"

// Group is a topical collection of posts, addressed by its URL slug.
// Deleting a group detaches its posts instead of removing them.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

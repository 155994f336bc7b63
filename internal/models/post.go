package models

import "time"

// Post represents a published entry in the Quill application.
//
// CreatedAt is assigned once at creation and is the canonical feed ordering
// key (descending). Edits never touch it. A post always belongs to an author
// and is removed with them; group membership is optional and survives group
// deletion as NULL rather than cascading.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id,omitempty"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

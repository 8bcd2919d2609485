package models

import (
	"strings"
	"time"
)

// Comment is a reply attached to exactly one Post.
// PostID is the only link back to the parent; there is no embedded Post.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;index" json:"postId"`
	Username     *string   `json:"username"`
	UserImageURL *string   `json:"userImageUrl"`
	Content      *string   `gorm:"type:text" json:"content"`
	ImageURL     *string   `gorm:"size:2048" json:"imageUrl"`
	VideoURL     *string   `gorm:"size:2048" json:"videoUrl"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	LikeCount    int       `gorm:"not null;default:0" json:"likeCount"`
}

// TableName pins the table name.
func (Comment) TableName() string {
	return "comments"
}

// IsBlank reports whether s is nil or only whitespace.
func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// TrimPtr returns a trimmed copy of s, keeping nil as nil.
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultUsername is stored when a post or comment arrives without an author name.
const DefaultUsername = "Anonymous"

// DefaultUserImageURL is stored when a post or comment arrives without an avatar.
const DefaultUserImageURL = "https://randomuser.me/api/portraits/lego/1.jpg"

// MaxMediaURLLength bounds image and video URLs.
const MaxMediaURLLength = 2048

// Post is a top-level content unit with optional text and media plus engagement counters.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     *string   `json:"username"`
	UserImageURL *string   `json:"userImageUrl"`
	Content      *string   `gorm:"type:text" json:"content"`
	ImageURL     *string   `gorm:"size:2048" json:"imageUrl"`
	VideoURL     *string   `gorm:"size:2048" json:"videoUrl"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LikeCount    int       `gorm:"not null;default:0" json:"likeCount"`
	ShareCount   int       `gorm:"not null;default:0" json:"shareCount"`
	Comments     []Comment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}

// TableName pins the table name.
func (Post) TableName() string {
	return "posts"
}

// HasBody reports whether the post carries content, an image or a video.
func (p *Post) HasBody() bool {
	return !IsBlank(p.Content) || !IsBlank(p.ImageURL) || !IsBlank(p.VideoURL)
}

// AfterFind makes a post without comments serialize them as [] rather than null.
func (p *Post) AfterFind(_ *gorm.DB) error {
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	return nil
}

// Package service holds the business rules between the HTTP handlers and the repositories.
package service

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"socialfeed/internal/models"

	"gorm.io/gorm"
)

const msgEmptyPost = "Post must contain either content, image, or video"

// normalizePost trims every text field, fills author defaults and stamps both timestamps.
// It is shared by single and bulk create.
func normalizePost(p *models.Post, now time.Time) {
	p.Username = withDefault(p.Username, models.DefaultUsername)
	p.UserImageURL = withDefault(p.UserImageURL, models.DefaultUserImageURL)
	p.Content = models.TrimPtr(p.Content)
	p.ImageURL = models.TrimPtr(p.ImageURL)
	p.VideoURL = models.TrimPtr(p.VideoURL)
	p.CreatedAt = storedTime(now)
	p.UpdatedAt = p.CreatedAt
}

// normalizeComment is the comment counterpart of normalizePost.
func normalizeComment(c *models.Comment, now time.Time) {
	c.Username = withDefault(c.Username, models.DefaultUsername)
	c.UserImageURL = withDefault(c.UserImageURL, models.DefaultUserImageURL)
	c.Content = models.TrimPtr(c.Content)
	c.ImageURL = models.TrimPtr(c.ImageURL)
	c.VideoURL = models.TrimPtr(c.VideoURL)
	c.CreatedAt = storedTime(now)
}

// storedTime truncates t to the microsecond precision postgres timestamps hold.
func storedTime(t time.Time) time.Time {
	return t.Truncate(time.Microsecond)
}

func withDefault(s *string, def string) *string {
	if models.IsBlank(s) {
		return models.StringPtr(def)
	}
	return models.TrimPtr(s)
}

func validateMedia(imageURL, videoURL *string) error {
	if tooLong(imageURL) {
		return models.NewValidationError(fmt.Sprintf("imageUrl must be at most %d characters", models.MaxMediaURLLength))
	}
	if tooLong(videoURL) {
		return models.NewValidationError(fmt.Sprintf("videoUrl must be at most %d characters", models.MaxMediaURLLength))
	}
	return nil
}

func tooLong(s *string) bool {
	return s != nil && utf8.RuneCountInString(*s) > models.MaxMediaURLLength
}

// validatePost checks an already-normalized post.
func validatePost(p *models.Post) error {
	if !p.HasBody() {
		return models.NewValidationError(msgEmptyPost)
	}
	return validateMedia(p.ImageURL, p.VideoURL)
}

// mapRepoErr turns a record-not-found into a NOT_FOUND AppError and anything else into INTERNAL_ERROR.
func mapRepoErr(err error, resource string, id uint) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}

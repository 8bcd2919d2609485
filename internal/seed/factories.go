// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"

	"socialfeed/internal/models"
	"socialfeed/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

var youtubeIDs = []string{"dQw4w9WgXcQ", "9bZkp7q19f0", "3JZ_D3ELwOQ", "L_jWHffIx5E", "kXYiU_JCYtU"}

// Factory builds randomized create inputs. A fixed seed gives a repeatable sequence.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory creates a Factory. A seed of 0 picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// PostInput builds a post with text and, sometimes, an image or a video.
func (f *Factory) PostInput() service.CreatePostInput {
	in := service.CreatePostInput{
		Username:     models.StringPtr(f.faker.Username()),
		UserImageURL: models.StringPtr(fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID())),
		Content:      models.StringPtr(f.faker.Paragraph(1, 3, 12, " ")),
	}

	switch f.faker.Number(0, 3) {
	case 0:
		in.ImageURL = models.StringPtr(fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.faker.UUID()))
	case 1:
		id := youtubeIDs[f.faker.Number(0, len(youtubeIDs)-1)]
		in.VideoURL = models.StringPtr("https://www.youtube.com/watch?v=" + id)
	}
	return in
}

// CommentInput builds a short text comment on postID. Some comments stay anonymous.
func (f *Factory) CommentInput(postID uint) service.CreateCommentInput {
	in := service.CreateCommentInput{
		PostID:  postID,
		Content: models.StringPtr(f.faker.Sentence(f.faker.Number(3, 12))),
	}
	if f.faker.Bool() {
		in.Username = models.StringPtr(f.faker.Username())
	}
	return in
}

// Number returns a value in [lo, hi].
func (f *Factory) Number(lo, hi int) int {
	return f.faker.Number(lo, hi)
}

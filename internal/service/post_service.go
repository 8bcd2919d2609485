package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"socialfeed/internal/models"
	"socialfeed/internal/observability"
	"socialfeed/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const resourcePost = "Post"

type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

// CreatePostInput carries the client-supplied fields of a new post. Nil means absent.
type CreatePostInput struct {
	Username     *string
	UserImageURL *string
	Content      *string
	ImageURL     *string
	VideoURL     *string
}

type UpdatePostInput struct {
	ID           uint
	Username     *string
	UserImageURL *string
	Content      *string
	ImageURL     *string
	VideoURL     *string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

func (s *PostService) ListPosts(ctx context.Context) (posts []*models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.ListPosts")
	defer func() { observability.EndSpan(span, err) }()

	posts, err = s.postRepo.List(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (post *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.GetPost", attribute.Int("post.id", int(id)))
	defer func() { observability.EndSpan(span, err) }()

	post, err = s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, resourcePost, id)
	}
	return post, nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.CreatePost")
	defer func() { observability.EndSpan(span, err) }()

	post = in.toPost()
	normalizePost(post, s.now())
	if err = validatePost(post); err != nil {
		return nil, err
	}

	if err = s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	post.Comments = []models.Comment{}
	return post, nil
}

// BulkCreatePosts validates every item before writing any of them, then inserts all in one transaction.
func (s *PostService) BulkCreatePosts(ctx context.Context, in []CreatePostInput) (posts []*models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.BulkCreatePosts", attribute.Int("posts.count", len(in)))
	defer func() { observability.EndSpan(span, err) }()

	now := s.now()
	posts = make([]*models.Post, 0, len(in))
	for i := range in {
		post := in[i].toPost()
		normalizePost(post, now)
		if err = validatePost(post); err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) {
				err = models.NewValidationError(fmt.Sprintf("posts[%d]: %s", i, appErr.Message))
			}
			return nil, err
		}
		posts = append(posts, post)
	}

	if err = s.postRepo.CreateBatch(ctx, posts); err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, p := range posts {
		p.Comments = []models.Comment{}
	}
	return posts, nil
}

// UpdatePost replaces all five text fields; absent values become null.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (post *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.UpdatePost", attribute.Int("post.id", int(in.ID)))
	defer func() { observability.EndSpan(span, err) }()

	post, err = s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, mapRepoErr(err, resourcePost, in.ID)
	}

	post.Username = models.TrimPtr(in.Username)
	post.UserImageURL = models.TrimPtr(in.UserImageURL)
	post.Content = models.TrimPtr(in.Content)
	post.ImageURL = models.TrimPtr(in.ImageURL)
	post.VideoURL = models.TrimPtr(in.VideoURL)
	post.UpdatedAt = storedTime(s.now())
	if err = validateMedia(post.ImageURL, post.VideoURL); err != nil {
		return nil, err
	}

	if err = s.postRepo.Update(ctx, post); err != nil {
		return nil, mapRepoErr(err, resourcePost, in.ID)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.DeletePost", attribute.Int("post.id", int(id)))
	defer func() { observability.EndSpan(span, err) }()

	return mapRepoErr(s.postRepo.Delete(ctx, id), resourcePost, id)
}

func (s *PostService) LikePost(ctx context.Context, id uint) (*models.Post, error) {
	return s.engage(ctx, "PostService.LikePost", id, observability.KindPostLike, s.postRepo.IncrementLikes)
}

func (s *PostService) SharePost(ctx context.Context, id uint) (*models.Post, error) {
	return s.engage(ctx, "PostService.SharePost", id, observability.KindPostShare, s.postRepo.IncrementShares)
}

func (s *PostService) engage(
	ctx context.Context,
	spanName string,
	id uint,
	kind string,
	increment func(context.Context, uint) error,
) (post *models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, spanName, attribute.Int("post.id", int(id)))
	defer func() { observability.EndSpan(span, err) }()

	if err = increment(ctx, id); err != nil {
		return nil, mapRepoErr(err, resourcePost, id)
	}
	observability.EngagementTotal.WithLabelValues(kind).Inc()

	post, err = s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, resourcePost, id)
	}
	return post, nil
}

// SearchPosts matches query case-insensitively anywhere in post content.
func (s *PostService) SearchPosts(ctx context.Context, query string) (posts []*models.Post, err error) {
	ctx, span := observability.StartSpan(ctx, "PostService.SearchPosts")
	defer func() { observability.EndSpan(span, err) }()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query must not be blank")
	}

	posts, err = s.postRepo.Search(ctx, query)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (in CreatePostInput) toPost() *models.Post {
	return &models.Post{
		Username:     in.Username,
		UserImageURL: in.UserImageURL,
		Content:      in.Content,
		ImageURL:     in.ImageURL,
		VideoURL:     in.VideoURL,
	}
}

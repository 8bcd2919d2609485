package service

import (
	"context"
	"time"

	"socialfeed/internal/models"
	"socialfeed/internal/observability"
	"socialfeed/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const resourceComment = "Comment"

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	now         func() time.Time
}

type CreateCommentInput struct {
	PostID       uint
	Username     *string
	UserImageURL *string
	Content      *string
	ImageURL     *string
	VideoURL     *string
}

type UpdateCommentInput struct {
	PostID    uint
	CommentID uint
	Content   *string
	ImageURL  *string
	VideoURL  *string
}

// CommentRef addresses a comment through its parent post.
type CommentRef struct {
	PostID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		now:         time.Now,
	}
}

// ListComments returns the comments of postID, oldest first. An unknown post yields an empty list.
func (s *CommentService) ListComments(ctx context.Context, postID uint) (comments []*models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.ListComments", attribute.Int("post.id", int(postID)))
	defer func() { observability.EndSpan(span, err) }()

	comments, err = s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

// CreateComment stores a comment under an existing post. It returns the parent post with all its
// comments and the stored comment.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (post *models.Post, comment *models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.CreateComment", attribute.Int("post.id", int(in.PostID)))
	defer func() { observability.EndSpan(span, err) }()

	if err = s.requirePost(ctx, in.PostID); err != nil {
		return nil, nil, err
	}

	comment = &models.Comment{
		PostID:       in.PostID,
		Username:     in.Username,
		UserImageURL: in.UserImageURL,
		Content:      in.Content,
		ImageURL:     in.ImageURL,
		VideoURL:     in.VideoURL,
	}
	normalizeComment(comment, s.now())
	if err = validateMedia(comment.ImageURL, comment.VideoURL); err != nil {
		return nil, nil, err
	}

	if err = s.commentRepo.Create(ctx, comment); err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	post, err = s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, nil, mapRepoErr(err, resourcePost, in.PostID)
	}
	return post, comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, ref CommentRef) (comment *models.Comment, err error) {
	ctx, span := s.startRefSpan(ctx, "CommentService.GetComment", ref)
	defer func() { observability.EndSpan(span, err) }()

	return s.ownedComment(ctx, ref)
}

// UpdateComment replaces content and media; author, likes and timestamps stay as stored.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (comment *models.Comment, err error) {
	ref := CommentRef{PostID: in.PostID, CommentID: in.CommentID}
	ctx, span := s.startRefSpan(ctx, "CommentService.UpdateComment", ref)
	defer func() { observability.EndSpan(span, err) }()

	comment, err = s.ownedComment(ctx, ref)
	if err != nil {
		return nil, err
	}

	comment.Content = models.TrimPtr(in.Content)
	comment.ImageURL = models.TrimPtr(in.ImageURL)
	comment.VideoURL = models.TrimPtr(in.VideoURL)
	if err = validateMedia(comment.ImageURL, comment.VideoURL); err != nil {
		return nil, err
	}

	if err = s.commentRepo.Update(ctx, comment); err != nil {
		return nil, mapRepoErr(err, resourceComment, in.CommentID)
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, ref CommentRef) (err error) {
	ctx, span := s.startRefSpan(ctx, "CommentService.DeleteComment", ref)
	defer func() { observability.EndSpan(span, err) }()

	if _, err = s.ownedComment(ctx, ref); err != nil {
		return err
	}
	return mapRepoErr(s.commentRepo.Delete(ctx, ref.CommentID), resourceComment, ref.CommentID)
}

func (s *CommentService) LikeComment(ctx context.Context, ref CommentRef) (comment *models.Comment, err error) {
	ctx, span := s.startRefSpan(ctx, "CommentService.LikeComment", ref)
	defer func() { observability.EndSpan(span, err) }()

	if _, err = s.ownedComment(ctx, ref); err != nil {
		return nil, err
	}
	if err = s.commentRepo.IncrementLikes(ctx, ref.CommentID); err != nil {
		return nil, mapRepoErr(err, resourceComment, ref.CommentID)
	}
	observability.EngagementTotal.WithLabelValues(observability.KindCommentLike).Inc()

	comment, err = s.commentRepo.GetByID(ctx, ref.CommentID)
	if err != nil {
		return nil, mapRepoErr(err, resourceComment, ref.CommentID)
	}
	return comment, nil
}

func (s *CommentService) requirePost(ctx context.Context, postID uint) error {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !ok {
		return models.NewNotFoundError(resourcePost, postID)
	}
	return nil
}

// ownedComment loads the comment only if the parent post exists and owns it.
// A comment that belongs to another post is reported as not found.
func (s *CommentService) ownedComment(ctx context.Context, ref CommentRef) (*models.Comment, error) {
	if err := s.requirePost(ctx, ref.PostID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByID(ctx, ref.CommentID)
	if err != nil {
		return nil, mapRepoErr(err, resourceComment, ref.CommentID)
	}
	if comment.PostID != ref.PostID {
		return nil, models.NewNotFoundError(resourceComment, ref.CommentID)
	}
	return comment, nil
}

func (s *CommentService) startRefSpan(ctx context.Context, name string, ref CommentRef) (context.Context, trace.Span) {
	return observability.StartSpan(ctx, name,
		attribute.Int("post.id", int(ref.PostID)),
		attribute.Int("comment.id", int(ref.CommentID)),
	)
}

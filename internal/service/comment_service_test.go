package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"socialfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	getByIDFn        func(context.Context, uint) (*models.Comment, error)
	listByPostFn     func(context.Context, uint) ([]*models.Comment, error)
	updateFn         func(context.Context, *models.Comment) error
	deleteFn         func(context.Context, uint) error
	incrementLikesFn func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) IncrementLikes(ctx context.Context, id uint) error {
	return s.incrementLikesFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1}, nil
		},
		listByPostFn:     func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:         func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		incrementLikesFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func newTestCommentService(commentRepo *commentRepoStub, postRepo *postRepoStub) *CommentService {
	svc := NewCommentService(commentRepo, postRepo)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func missingPostRepo() *postRepoStub {
	repo := noopPostRepo()
	repo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	return repo
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("missing post creates nothing", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, _ *models.Comment) error {
			t.Fatal("comment must not be created for a missing post")
			return nil
		}
		_, _, err := newTestCommentService(commentRepo, missingPostRepo()).CreateComment(context.Background(), CreateCommentInput{
			PostID:  99,
			Content: models.StringPtr("hi"),
		})
		assertNotFoundError(t, err)
	})

	t.Run("returns parent post with defaults applied", func(t *testing.T) {
		t.Parallel()
		var stored *models.Comment
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 42
			stored = c
			return nil
		}
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Comments: []models.Comment{*stored}}, nil
		}

		post, comment, err := newTestCommentService(commentRepo, postRepo).CreateComment(context.Background(), CreateCommentInput{
			PostID:  3,
			Content: models.StringPtr("  nice  "),
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), post.ID)
		require.Len(t, post.Comments, 1)
		assert.Same(t, stored, comment)
		assert.Equal(t, uint(3), stored.PostID)
		assert.Equal(t, "nice", *stored.Content)
		assert.Equal(t, models.DefaultUsername, *stored.Username)
		assert.Equal(t, models.DefaultUserImageURL, *stored.UserImageURL)
		assert.Equal(t, fixedNow, stored.CreatedAt)
	})
}

func TestCommentService_OwnershipChecks(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		if id == 5 {
			return &models.Comment{ID: 5, PostID: 1, Content: models.StringPtr("original")}, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	deleted := false
	commentRepo.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := newTestCommentService(commentRepo, noopPostRepo())
	ctx := context.Background()

	wrongPost := CommentRef{PostID: 2, CommentID: 5}
	assertNotFoundError(t, svc.DeleteComment(ctx, wrongPost))
	assert.False(t, deleted)

	_, err := svc.GetComment(ctx, wrongPost)
	assertNotFoundError(t, err)
	_, err = svc.LikeComment(ctx, wrongPost)
	assertNotFoundError(t, err)
	_, err = svc.UpdateComment(ctx, UpdateCommentInput{PostID: 2, CommentID: 5, Content: models.StringPtr("x")})
	assertNotFoundError(t, err)

	_, err = svc.GetComment(ctx, CommentRef{PostID: 1, CommentID: 6})
	assertNotFoundError(t, err)

	missing := newTestCommentService(commentRepo, missingPostRepo())
	assertNotFoundError(t, missing.DeleteComment(ctx, CommentRef{PostID: 1, CommentID: 5}))

	require.NoError(t, svc.DeleteComment(ctx, CommentRef{PostID: 1, CommentID: 5}))
	assert.True(t, deleted)
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{
			ID:        id,
			PostID:    1,
			Username:  models.StringPtr("bo"),
			Content:   models.StringPtr("old"),
			ImageURL:  models.StringPtr("https://img"),
			LikeCount: 4,
		}, nil
	}
	svc := newTestCommentService(commentRepo, noopPostRepo())

	comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{
		PostID:    1,
		CommentID: 8,
		Content:   models.StringPtr("  new "),
	})
	require.NoError(t, err)
	assert.Equal(t, "new", *comment.Content)
	assert.Nil(t, comment.ImageURL)
	assert.Equal(t, "bo", *comment.Username)
	assert.Equal(t, 4, comment.LikeCount)
}

func TestCommentService_LikeComment(t *testing.T) {
	t.Parallel()

	likes := 0
	commentRepo := noopCommentRepo()
	commentRepo.incrementLikesFn = func(_ context.Context, _ uint) error { likes++; return nil }
	commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, PostID: 1, LikeCount: likes}, nil
	}
	svc := newTestCommentService(commentRepo, noopPostRepo())

	for i := 0; i < 3; i++ {
		_, err := svc.LikeComment(context.Background(), CommentRef{PostID: 1, CommentID: 2})
		require.NoError(t, err)
	}
	comment, err := svc.LikeComment(context.Background(), CommentRef{PostID: 1, CommentID: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, comment.LikeCount)
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()

	svc := newTestCommentService(noopCommentRepo(), missingPostRepo())
	comments, err := svc.ListComments(context.Background(), 123)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)

	commentRepo := noopCommentRepo()
	commentRepo.listByPostFn = func(_ context.Context, _ uint) ([]*models.Comment, error) {
		return nil, errors.New("boom")
	}
	_, err = newTestCommentService(commentRepo, noopPostRepo()).ListComments(context.Background(), 1)
	assertAppError(t, err, models.CodeInternal)
}

func TestCommentService_ExistsFailureIsInternal(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, errors.New("timeout") }
	_, err := newTestCommentService(noopCommentRepo(), postRepo).GetComment(context.Background(), CommentRef{PostID: 1, CommentID: 1})
	assertAppError(t, err, models.CodeInternal)
}

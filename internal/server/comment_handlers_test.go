package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"socialfeed/internal/models"
	"socialfeed/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentsPath(postID uint) string {
	return fmt.Sprintf("/api/posts/%d/comments", postID)
}

func commentPath(postID, commentID uint) string {
	return fmt.Sprintf("/api/posts/%d/comments/%d", postID, commentID)
}

func TestCreateComment_RespondsWithParentPost(t *testing.T) {
	s, pub := newTestServer(t)
	post := mustCreatePost(t, s, map[string]interface{}{"content": "parent"})

	var got postJSON
	status := doJSON(t, s, http.MethodPost, commentsPath(post.ID), map[string]interface{}{
		"content": "  first!  ",
	}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, post.ID, got.ID)
	require.Len(t, got.Comments, 1)

	c := got.Comments[0]
	assert.NotZero(t, c.ID)
	assert.Equal(t, post.ID, c.PostID)
	assert.Equal(t, "first!", *c.Content)
	assert.Equal(t, models.DefaultUsername, *c.Username)
	assert.Equal(t, models.DefaultUserImageURL, *c.UserImageURL)
	assert.Zero(t, c.LikeCount)

	doJSON(t, s, http.MethodPost, commentsPath(post.ID), map[string]interface{}{"content": "second"}, &got)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first!", *got.Comments[0].Content, "comments are oldest first")

	assert.Contains(t, pub.types(), notifications.CommentCreated)
}

func TestCreateComment_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	post := mustCreatePost(t, s, map[string]interface{}{"content": "parent"})

	var errBody errorJSON
	assert.Equal(t, http.StatusBadRequest, doJSON(t, s, http.MethodPost, commentsPath(post.ID),
		map[string]interface{}{"imageUrl": "https://" + strings.Repeat("i", 2041)}, &errBody))
	assert.Equal(t, "Validation failed", errBody.Error)
	assert.Equal(t, "imageUrl must be at most 2048 characters", errBody.Message)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, s, http.MethodPost, "/api/posts/abc/comments",
		map[string]interface{}{"content": "hi"}, &errBody))
	assert.Equal(t, "Invalid post ID", errBody.Message)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, s, http.MethodPost, commentsPath(post.ID), `not json`, nil))

	var comments []commentJSON
	doJSON(t, s, http.MethodGet, commentsPath(post.ID), nil, &comments)
	assert.Empty(t, comments)
}

func TestCreateComment_MissingPostCreatesNothing(t *testing.T) {
	s, pub := newTestServer(t)

	var errBody errorJSON
	status := doJSON(t, s, http.MethodPost, commentsPath(404), map[string]interface{}{"content": "orphan"}, &errBody)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Post with ID 404 not found", errBody.Message)

	var count int64
	require.NoError(t, s.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, pub.types())
}

func TestGetComments(t *testing.T) {
	s, _ := newTestServer(t)

	var comments []commentJSON
	assert.Equal(t, http.StatusOK, doJSON(t, s, http.MethodGet, commentsPath(999), nil, &comments))
	assert.NotNil(t, comments)
	assert.Empty(t, comments)

	post := mustCreatePost(t, s, map[string]interface{}{"content": "parent"})
	other := mustCreatePost(t, s, map[string]interface{}{"content": "other"})
	doJSON(t, s, http.MethodPost, commentsPath(post.ID), map[string]interface{}{"content": "a"}, nil)
	doJSON(t, s, http.MethodPost, commentsPath(other.ID), map[string]interface{}{"content": "elsewhere"}, nil)
	doJSON(t, s, http.MethodPost, commentsPath(post.ID), map[string]interface{}{"content": "b"}, nil)

	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodGet, commentsPath(post.ID), nil, &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "a", *comments[0].Content)
	assert.Equal(t, "b", *comments[1].Content)
}

func TestCommentLifecycle(t *testing.T) {
	s, pub := newTestServer(t)
	post := mustCreatePost(t, s, map[string]interface{}{"content": "parent"})

	var withComment postJSON
	doJSON(t, s, http.MethodPost, commentsPath(post.ID), map[string]interface{}{
		"username": "ana",
		"content":  "draft",
		"imageUrl": "https://img",
	}, &withComment)
	require.Len(t, withComment.Comments, 1)
	id := withComment.Comments[0].ID

	var got commentJSON
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodGet, commentPath(post.ID, id), nil, &got))
	assert.Equal(t, "draft", *got.Content)

	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPut, commentPath(post.ID, id), map[string]interface{}{
		"username": "mallory",
		"content":  " final ",
	}, &got))
	assert.Equal(t, "final", *got.Content)
	assert.Nil(t, got.ImageURL)
	assert.Equal(t, "ana", *got.Username, "author fields are not editable")

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, commentPath(post.ID, id)+"/like", nil, &got))
	}
	assert.Equal(t, 2, got.LikeCount)

	assert.Equal(t, http.StatusNoContent, doJSON(t, s, http.MethodDelete, commentPath(post.ID, id), nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodGet, commentPath(post.ID, id), nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodDelete, commentPath(post.ID, id), nil, nil))

	var parent postJSON
	doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil, &parent)
	assert.Empty(t, parent.Comments)

	types := pub.types()
	assert.Contains(t, types, notifications.CommentUpdated)
	assert.Contains(t, types, notifications.CommentLiked)
	assert.Contains(t, types, notifications.CommentDeleted)
}

func TestComment_WrongParentIsNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	owner := mustCreatePost(t, s, map[string]interface{}{"content": "owner"})
	other := mustCreatePost(t, s, map[string]interface{}{"content": "other"})

	var withComment postJSON
	doJSON(t, s, http.MethodPost, commentsPath(owner.ID), map[string]interface{}{"content": "mine"}, &withComment)
	require.Len(t, withComment.Comments, 1)
	id := withComment.Comments[0].ID

	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodDelete, commentPath(other.ID, id), nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodGet, commentPath(other.ID, id), nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodPost, commentPath(other.ID, id)+"/like", nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, s, http.MethodPut, commentPath(other.ID, id),
		map[string]interface{}{"content": "hijack"}, nil))

	var got commentJSON
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodGet, commentPath(owner.ID, id), nil, &got))
	assert.Equal(t, "mine", *got.Content)
	assert.Zero(t, got.LikeCount)
}

func TestComment_InvalidIDs(t *testing.T) {
	s, _ := newTestServer(t)

	var errBody errorJSON
	assert.Equal(t, http.StatusBadRequest, doJSON(t, s, http.MethodGet, "/api/posts/1/comments/x", nil, &errBody))
	assert.Equal(t, "Invalid comment ID", errBody.Message)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, s, http.MethodDelete, "/api/posts/x/comments/1", nil, &errBody))
	assert.Equal(t, "Invalid post ID", errBody.Message)
}

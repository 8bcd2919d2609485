package server

import (
	"socialfeed/internal/notifications"
	"socialfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Username     *string `json:"username"`
	UserImageURL *string `json:"userImageUrl"`
	Content      *string `json:"content"`
	ImageURL     *string `json:"imageUrl"`
	VideoURL     *string `json:"videoUrl"`
}

// commentRef parses both path ids, writing a 400 when either is malformed.
func (s *Server) commentRef(c *fiber.Ctx) (service.CommentRef, error) {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return service.CommentRef{}, err
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return service.CommentRef{}, err
	}
	return service.CommentRef{PostID: postID, CommentID: commentID}, nil
}

// GetComments handles GET /api/posts/:postId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:postId/comments and responds with the parent post.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	post, comment, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		PostID:       postID,
		Username:     req.Username,
		UserImageURL: req.UserImageURL,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		VideoURL:     req.VideoURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewCommentEvent(notifications.CommentCreated, post.ID, comment.ID, comment))
	return c.JSON(post)
}

// GetComment handles GET /api/posts/:postId/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	ref, err := s.commentRef(c)
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), ref)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PUT /api/posts/:postId/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ref, err := s.commentRef(c)
	if err != nil {
		return nil
	}
	var req commentRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.commentService.UpdateComment(ctx, service.UpdateCommentInput{
		PostID:    ref.PostID,
		CommentID: ref.CommentID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		VideoURL:  req.VideoURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewCommentEvent(notifications.CommentUpdated, ref.PostID, comment.ID, comment))
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/posts/:postId/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ref, err := s.commentRef(c)
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(ctx, ref); err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewCommentEvent(notifications.CommentDeleted, ref.PostID, ref.CommentID, nil))
	return c.SendStatus(fiber.StatusNoContent)
}

// LikeComment handles POST /api/posts/:postId/comments/:commentId/like
func (s *Server) LikeComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	ref, err := s.commentRef(c)
	if err != nil {
		return nil
	}

	comment, err := s.commentService.LikeComment(ctx, ref)
	if err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewCommentEvent(notifications.CommentLiked, ref.PostID, comment.ID,
		fiber.Map{"likeCount": comment.LikeCount}))
	return c.JSON(comment)
}

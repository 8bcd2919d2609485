package server

import (
	"socialfeed/internal/notifications"
	"socialfeed/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postRequest is the JSON body accepted by create, bulk create and update.
type postRequest struct {
	Username     *string `json:"username"`
	UserImageURL *string `json:"userImageUrl"`
	Content      *string `json:"content"`
	ImageURL     *string `json:"imageUrl"`
	VideoURL     *string `json:"videoUrl"`
}

func (r postRequest) createInput() service.CreatePostInput {
	return service.CreatePostInput{
		Username:     r.Username,
		UserImageURL: r.UserImageURL,
		Content:      r.Content,
		ImageURL:     r.ImageURL,
		VideoURL:     r.VideoURL,
	}
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// SearchPosts handles GET /api/posts/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	posts, err := s.postService.SearchPosts(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var req postRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(ctx, req.createInput())
	if err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewPostEvent(notifications.PostCreated, post.ID, post))
	return c.Status(fiber.StatusOK).JSON(post)
}

// BulkCreatePosts handles POST /api/posts/bulk
func (s *Server) BulkCreatePosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var req []postRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	inputs := make([]service.CreatePostInput, len(req))
	for i := range req {
		inputs[i] = req[i].createInput()
	}

	posts, err := s.postService.BulkCreatePosts(ctx, inputs)
	if err != nil {
		return respondError(c, err)
	}

	if len(posts) > 0 {
		ids := make([]uint, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
		}
		s.publish(ctx, notifications.NewPostEvent(notifications.PostsBulkCreated, ids[0], fiber.Map{"ids": ids}))
	}
	return c.JSON(posts)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req postRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		ID:           id,
		Username:     req.Username,
		UserImageURL: req.UserImageURL,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		VideoURL:     req.VideoURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewPostEvent(notifications.PostUpdated, post.ID, post))
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, id); err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewPostEvent(notifications.PostDeleted, id, nil))
	return c.SendStatus(fiber.StatusNoContent)
}

// LikePost handles POST /api/posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.LikePost(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewPostEvent(notifications.PostLiked, post.ID, fiber.Map{"likeCount": post.LikeCount}))
	return c.JSON(post)
}

// SharePost handles POST /api/posts/:id/share
func (s *Server) SharePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.SharePost(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	s.publish(ctx, notifications.NewPostEvent(notifications.PostShared, post.ID, fiber.Map{"shareCount": post.ShareCount}))
	return c.JSON(post)
}

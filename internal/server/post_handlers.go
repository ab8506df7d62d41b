package server

import (
	"fmt"
	"strings"

	"postboard/internal/models"
	"postboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
	UserID   string `json:"userId"`
}

type likeRequest struct {
	UserID string `json:"userId"`
}

// ListPosts handles GET /api/posts
// @Summary List posts
// @Description All posts newest first with like counts. isLiked reflects the optional userId.
// @Tags posts
// @Produce json
// @Param userId query string false "Viewer user ID"
// @Success 200 {array} models.PostSummary
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext(), c.Query("userId"))
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch posts")
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body createPostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Content:  req.Content,
		ImageURL: req.ImageURL,
		UserID:   req.UserID,
	})
	if err != nil {
		return respondServiceError(c, err, "Failed to create post")
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
// @Summary Delete post
// @Description Deletes the post and all of its likes.
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), postID); err != nil {
		return respondServiceError(c, err, "Failed to delete post")
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("Post %d deleted", postID)})
}

// LikePost handles POST /api/posts/:id/like
// @Summary Like post
// @Description Liking a post twice is rejected with 400.
// @Tags likes
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body likeRequest true "Liking user"
// @Success 201 {object} models.LikeState
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	userID, err := likeUserID(c)
	if err != nil {
		return nil
	}

	state, err := s.likeService.Like(c.UserContext(), service.LikeInput{PostID: postID, UserID: userID})
	if err != nil {
		return respondServiceError(c, err, "Failed to like post")
	}

	return c.Status(fiber.StatusCreated).JSON(state)
}

// UnlikePost handles DELETE /api/posts/:id/like
// @Summary Unlike post
// @Description Removes the like if present. userId may also be passed as a query parameter.
// @Tags likes
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body likeRequest false "Unliking user"
// @Param userId query string false "Unliking user when no body is sent"
// @Success 200 {object} models.LikeState
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /posts/{id}/like [delete]
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	userID, err := likeUserID(c)
	if err != nil {
		return nil
	}

	state, err := s.likeService.Unlike(c.UserContext(), service.LikeInput{PostID: postID, UserID: userID})
	if err != nil {
		return respondServiceError(c, err, "Failed to unlike post")
	}

	return c.JSON(state)
}

// likeUserID reads userId from the JSON body, falling back to the query string
// when the body is empty. A malformed body writes a 400 and returns errResponseWritten.
func likeUserID(c *fiber.Ctx) (string, error) {
	var req likeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
			return "", errResponseWritten
		}
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = c.Query("userId")
	}
	return req.UserID, nil
}

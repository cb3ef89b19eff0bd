package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts and their engagement
type PostHandler struct {
	feed *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(feed *services.FeedService) *PostHandler {
	return &PostHandler{feed: feed}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/comment", h.AddComment)
	g.POST("/posts/:id/share", h.SharePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.feed.CreatePost(c.Request().Context(), getUserIDFromContext(c), req.Content, req.Media)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.feed.GetPost(c.Param("id"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// ToggleLike likes the post, or unlikes it if already liked
func (h *PostHandler) ToggleLike(c echo.Context) error {
	post, liked, err := h.feed.ToggleLike(c.Request().Context(), c.Param("id"), getUserIDFromContext(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, models.LikeResponse{Likes: post.Likes, Liked: liked})
}

// AddComment adds a comment to a post
func (h *PostHandler) AddComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.feed.AddComment(c.Request().Context(), c.Param("id"), getUserIDFromContext(c), req.Text)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) SharePost(c echo.Context) error {
	post, err := h.feed.SharePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"shares": post.Shares})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the friends-only feed
type FeedHandler struct {
	feed *services.FeedService
}

func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
}

// EnrichedPost is a post with the caller's like flag
type EnrichedPost struct {
	models.Post
	IsLiked bool `json:"is_liked"`
}

// GetFeed returns the posts of the current user and their friends, newest
// first. Without a page parameter the whole feed is returned.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	posts, meta, err := h.feed.GetFeed(currentUserID, page, limit)
	if err != nil {
		return httpError(c, err)
	}

	enrichedPosts := make([]EnrichedPost, len(posts))
	for i := range posts {
		enrichedPosts[i] = EnrichedPost{Post: posts[i], IsLiked: posts[i].LikedBy(currentUserID)}
	}

	resp := echo.Map{
		"success": true,
		"data": echo.Map{
			"posts": enrichedPosts,
		},
	}
	if meta != nil {
		resp["meta"] = meta
	}
	return c.JSON(http.StatusOK, resp)
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return n, nil
}

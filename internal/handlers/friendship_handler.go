package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	graph *services.GraphService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(graph *services.GraphService) *FriendshipHandler {
	return &FriendshipHandler{graph: graph}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests", h.GetPendingFriendRequests)
	g.POST("/friends/:id/respond", h.RespondFriendRequest)
	g.GET("/friends", h.GetFriends)
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	var req models.CreateFriendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	friendRequest, err := h.graph.RequestFriend(c.Request().Context(), getUserIDFromContext(c), req.FriendID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, friendRequest)
}

// GetPendingFriendRequests retrieves pending friend requests for the authenticated user
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	requests, err := h.graph.PendingRequests(getUserIDFromContext(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

// RespondFriendRequest accepts or rejects the request with the given id
func (h *FriendshipHandler) RespondFriendRequest(c echo.Context) error {
	var req models.RespondFriendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	edge, err := h.graph.RespondFriend(c.Request().Context(), c.Param("id"), getUserIDFromContext(c), services.FriendAction(req.Action))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, edge)
}

// GetFriends retrieves the list of accepted friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	friends, err := h.graph.ListFriends(getUserIDFromContext(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, friends)
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
)

// FeedService creates posts and assembles the friends-only feed
type FeedService struct {
	posts    repositories.PostRepository
	users    repositories.UserRepository
	graph    *GraphService
	notifier *Notifier
	now      func() time.Time
	newID    func() string
}

// CreatePost stores a post with a snapshot of the author's name and avatar,
// then notifies every accepted friend of the author.
func (s *FeedService) CreatePost(ctx context.Context, authorID, content string, media []string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && len(media) == 0 {
		return nil, fmt.Errorf("%w: post needs content or media", models.ErrValidation)
	}
	author, err := s.users.GetUserByID(authorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:         s.newID(),
		UserID:     author.ID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Content:    content,
		Media:      append([]string{}, media...),
		Likes:      []string{},
		Comments:   []models.Comment{},
		CreatedAt:  s.now(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	friends, err := s.graph.FriendIDs(author.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.notifier.Notify(ctx, author, models.NotificationPost, post.ID, friends...); err != nil {
		return nil, err
	}
	return post, nil
}

// Page describes one slice of a feed
type Page struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// GetFeed returns posts by userID and their accepted friends, newest first.
// page 0 returns everything; from page 1 on the result is cut into pages of
// limit posts.
func (s *FeedService) GetFeed(userID string, page, limit int) ([]models.Post, *Page, error) {
	friends, err := s.graph.FriendIDs(userID)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.posts.GetPostsByUserIDs(append(friends, userID))
	if err != nil {
		return nil, nil, err
	}
	if page <= 0 {
		return posts, nil, nil
	}

	if limit < 1 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}
	total := len(posts)
	totalPages := (total + limit - 1) / limit
	meta := &Page{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      total,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
	start := (page - 1) * limit
	if start >= total {
		return []models.Post{}, meta, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return posts[start:end], meta, nil
}

func (s *FeedService) GetPost(id string) (*models.Post, error) {
	return s.posts.GetPostByID(id)
}

// ToggleLike likes or unlikes a post. Only a new like notifies the author,
// and never when the author likes their own post.
func (s *FeedService) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, bool, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, false, err
	}
	post, liked, err := s.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, false, err
	}
	if liked {
		if _, err := s.notifier.Notify(ctx, user, models.NotificationLike, post.ID, post.UserID); err != nil {
			return nil, false, err
		}
	}
	return post, liked, nil
}

// AddComment appends a comment and notifies the author unless they wrote it
func (s *FeedService) AddComment(ctx context.Context, postID, userID, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", models.ErrValidation)
	}
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	comment := models.Comment{
		ID:         s.newID(),
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Text:       text,
		CreatedAt:  s.now(),
	}
	post, err := s.posts.AddComment(ctx, postID, comment)
	if err != nil {
		return nil, err
	}
	if _, err := s.notifier.Notify(ctx, user, models.NotificationComment, post.ID, post.UserID); err != nil {
		return nil, err
	}
	return &comment, nil
}

// SharePost bumps the share counter
func (s *FeedService) SharePost(ctx context.Context, postID string) (*models.Post, error) {
	return s.posts.IncrementShares(ctx, postID)
}

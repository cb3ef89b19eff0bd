package repositories

import (
	"context"
	"fmt"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/store"
)

// PostRepository defines the interface for post data operations. Posts are
// kept newest first.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(id string) (*models.Post, error)
	GetPostsByUserIDs(userIDs []string) ([]models.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (*models.Post, bool, error)
	AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error)
	IncrementShares(ctx context.Context, postID string) (*models.Post, error)
}

// SnapshotPostRepository implements PostRepository over the posts snapshot
type SnapshotPostRepository struct {
	posts *store.Collection[models.Post]
}

// NewSnapshotPostRepository opens the posts collection
func NewSnapshotPostRepository(ctx context.Context, s store.SnapshotStore) (*SnapshotPostRepository, error) {
	col, err := store.Open[models.Post](ctx, s, store.PostsCollection)
	if err != nil {
		return nil, err
	}
	return &SnapshotPostRepository{posts: col}, nil
}

// CreatePost puts a post at the front of the log
func (r *SnapshotPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.Media == nil {
		post.Media = []string{}
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return r.posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		return append([]models.Post{*post}, posts...), nil
	})
}

// GetPostByID retrieves a post by ID
func (r *SnapshotPostRepository) GetPostByID(id string) (*models.Post, error) {
	var found *models.Post
	err := r.posts.View(func(posts []models.Post) error {
		for i := range posts {
			if posts[i].ID == id {
				p := posts[i]
				found = &p
				return nil
			}
		}
		return fmt.Errorf("%w: post", models.ErrNotFound)
	})
	return found, err
}

// GetPostsByUserIDs retrieves posts authored by any of userIDs, in log order
func (r *SnapshotPostRepository) GetPostsByUserIDs(userIDs []string) ([]models.Post, error) {
	authors := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		authors[id] = true
	}
	result := []models.Post{}
	err := r.posts.View(func(posts []models.Post) error {
		for _, p := range posts {
			if authors[p.UserID] {
				result = append(result, p)
			}
		}
		return nil
	})
	return result, err
}

func (r *SnapshotPostRepository) modify(ctx context.Context, postID string, fn func(post *models.Post)) (*models.Post, error) {
	var updated models.Post
	err := r.posts.Update(ctx, func(posts []models.Post) ([]models.Post, error) {
		for i := range posts {
			if posts[i].ID == postID {
				fn(&posts[i])
				updated = posts[i]
				return posts, nil
			}
		}
		return nil, fmt.Errorf("%w: post", models.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ToggleLike adds userID to the like-set, or removes it when present. The
// boolean reports whether the user likes the post afterwards.
func (r *SnapshotPostRepository) ToggleLike(ctx context.Context, postID, userID string) (*models.Post, bool, error) {
	liked := false
	post, err := r.modify(ctx, postID, func(p *models.Post) {
		for i, id := range p.Likes {
			if id == userID {
				p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
				return
			}
		}
		p.Likes = append(p.Likes, userID)
		liked = true
	})
	if err != nil {
		return nil, false, err
	}
	return post, liked, nil
}

// AddComment appends a comment to the post
func (r *SnapshotPostRepository) AddComment(ctx context.Context, postID string, comment models.Comment) (*models.Post, error) {
	return r.modify(ctx, postID, func(p *models.Post) {
		p.Comments = append(p.Comments, comment)
	})
}

// IncrementShares bumps the share counter
func (r *SnapshotPostRepository) IncrementShares(ctx context.Context, postID string) (*models.Post, error) {
	return r.modify(ctx, postID, func(p *models.Post) {
		p.Shares++
	})
}

package models

import "time"

// Post is a feed entry. Author name and avatar are copied at creation time
// and are not refreshed when the author edits their profile.
type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Content    string    `json:"content"`
	Media      []string  `json:"media"`
	Likes      []string  `json:"likes"`
	Comments   []Comment `json:"comments"`
	Shares     int       `json:"shares"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikedBy reports whether userID is in the post's like-set
func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string   `json:"content" validate:"max=5000"`
	Media   []string `json:"media,omitempty" validate:"omitempty,max=5,dive,url"`
}

// LikeResponse is the like-set after a toggle
type LikeResponse struct {
	Likes []string `json:"likes"`
	Liked bool     `json:"liked"`
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
)

// UserService serves profiles and user search
type UserService struct {
	users repositories.UserRepository
}

func (s *UserService) Get(id string) (*models.User, error) {
	return s.users.GetUserByID(id)
}

// ProfileUpdate holds the editable profile fields; empty or nil means unchanged
type ProfileUpdate struct {
	Name   string
	Bio    *string
	Avatar string
}

// UpdateProfile edits the caller's profile. Existing posts keep the author
// snapshot taken when they were written.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileUpdate) (*models.User, error) {
	return s.users.UpdateUser(ctx, id, func(u *models.User) error {
		if name := strings.TrimSpace(in.Name); name != "" {
			u.Name = name
		}
		if in.Bio != nil {
			u.Bio = strings.TrimSpace(*in.Bio)
		}
		if in.Avatar != "" {
			u.Avatar = in.Avatar
		}
		return nil
	})
}

// Search matches query against name or email, case-insensitively, leaving out the caller
func (s *UserService) Search(callerID, query string) ([]models.UserCompact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query 'q' is required", models.ErrValidation)
	}
	users, err := s.users.SearchUsers(query, callerID)
	if err != nil {
		return nil, err
	}
	result := make([]models.UserCompact, len(users))
	for i := range users {
		result[i] = users[i].ToCompact()
	}
	return result, nil
}

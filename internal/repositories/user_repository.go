package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/store"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsersByIDs(ids []string) (map[string]models.User, error)
	UpdateUser(ctx context.Context, id string, fn func(user *models.User) error) (*models.User, error)
	AddFriends(ctx context.Context, a, b string) error
	SearchUsers(query, excludeID string) ([]models.User, error)
}

// SnapshotUserRepository implements UserRepository over the users snapshot
type SnapshotUserRepository struct {
	users *store.Collection[models.User]
}

// NewSnapshotUserRepository opens the users collection
func NewSnapshotUserRepository(ctx context.Context, s store.SnapshotStore) (*SnapshotUserRepository, error) {
	col, err := store.Open[models.User](ctx, s, store.UsersCollection)
	if err != nil {
		return nil, err
	}
	return &SnapshotUserRepository{users: col}, nil
}

// CreateUser appends a user, rejecting an email that is already registered
func (r *SnapshotUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if strings.EqualFold(u.Email, user.Email) {
				return nil, fmt.Errorf("%w: user with this email already registered", models.ErrConflict)
			}
		}
		if user.Friends == nil {
			user.Friends = []string{}
		}
		return append(users, *user), nil
	})
}

func (r *SnapshotUserRepository) find(match func(u *models.User) bool) (*models.User, error) {
	var found *models.User
	err := r.users.View(func(users []models.User) error {
		for i := range users {
			if match(&users[i]) {
				u := users[i]
				found = &u
				return nil
			}
		}
		return fmt.Errorf("%w: user", models.ErrNotFound)
	})
	return found, err
}

// GetUserByID retrieves a user by ID
func (r *SnapshotUserRepository) GetUserByID(id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

// GetUserByEmail retrieves a user by email, ignoring case
func (r *SnapshotUserRepository) GetUserByEmail(email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

// GetUserByFirebaseUID retrieves a user linked to a Firebase account
func (r *SnapshotUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	if firebaseUID == "" {
		return nil, fmt.Errorf("%w: user", models.ErrNotFound)
	}
	return r.find(func(u *models.User) bool { return u.FirebaseUID == firebaseUID })
}

// GetUsersByIDs returns the users that exist among ids, keyed by ID
func (r *SnapshotUserRepository) GetUsersByIDs(ids []string) (map[string]models.User, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	result := make(map[string]models.User, len(ids))
	err := r.users.View(func(users []models.User) error {
		for _, u := range users {
			if wanted[u.ID] {
				result[u.ID] = u
			}
		}
		return nil
	})
	return result, err
}

// UpdateUser applies fn to the stored user and persists the result
func (r *SnapshotUserRepository) UpdateUser(ctx context.Context, id string, fn func(user *models.User) error) (*models.User, error) {
	var updated models.User
	err := r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].ID != id {
				continue
			}
			if err := fn(&users[i]); err != nil {
				return nil, err
			}
			updated = users[i]
			return users, nil
		}
		return nil, fmt.Errorf("%w: user", models.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddFriends mirrors a and b into each other's adjacency list. Existing
// entries are left alone, so repeating the call changes nothing.
func (r *SnapshotUserRepository) AddFriends(ctx context.Context, a, b string) error {
	return r.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		var ua, ub *models.User
		for i := range users {
			switch users[i].ID {
			case a:
				ua = &users[i]
			case b:
				ub = &users[i]
			}
		}
		if ua == nil || ub == nil {
			return nil, fmt.Errorf("%w: user", models.ErrNotFound)
		}
		if ua.HasFriend(b) && ub.HasFriend(a) {
			return nil, store.ErrNoChange
		}
		if !ua.HasFriend(b) {
			ua.Friends = append(ua.Friends, b)
		}
		if !ub.HasFriend(a) {
			ub.Friends = append(ub.Friends, a)
		}
		return users, nil
	})
}

// SearchUsers searches for users by name or email (case-insensitive)
func (r *SnapshotUserRepository) SearchUsers(query, excludeID string) ([]models.User, error) {
	q := strings.ToLower(query)
	result := []models.User{}
	err := r.users.View(func(users []models.User) error {
		for _, u := range users {
			if u.ID == excludeID {
				continue
			}
			if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
				result = append(result, u)
			}
		}
		return nil
	})
	return result, err
}

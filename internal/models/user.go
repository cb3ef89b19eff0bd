package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is the stored account record. PasswordHash never leaves the store;
// handlers respond with UserProfile or UserCompact instead.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FirebaseUID  string    `json:"firebase_uid,omitempty"`
	Avatar       string    `json:"avatar"`
	Bio          string    `json:"bio"`
	Birthday     string    `json:"birthday,omitempty"`
	Joined       time.Time `json:"joined"`
	Friends      []string  `json:"friends"`
}

// UserProfile is what a user sees of their own account
type UserProfile struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Bio    string    `json:"bio"`
	Joined time.Time `json:"joined"`
}

// UserCompact is the public projection used in search results, friend lists and conversations
type UserCompact struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Bio:    u.Bio,
		Joined: u.Joined,
	}
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:     u.ID,
		Name:   u.Name,
		Avatar: u.Avatar,
		Bio:    u.Bio,
	}
}

// HasFriend reports whether id is in the user's adjacency list
func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

type CreateLocalUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,url"`
	Birthday string `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name   string  `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=300"`
	Avatar string  `json:"avatar,omitempty" validate:"omitempty,url"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// IDTokenVerifier is satisfied by *auth.Client from the Firebase Admin SDK
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// AuthService registers users and exchanges credentials for session tokens
type AuthService struct {
	users      repositories.UserRepository
	tokens     *auth.TokenManager
	firebase   IDTokenVerifier
	now        func() time.Time
	newID      func() string
	bcryptCost int
}

// RegisterInput carries the fields accepted at sign-up. Avatar and Birthday are optional.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Avatar   string
	Birthday string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func defaultAvatar(email string) string {
	return "https://i.pravatar.cc/150?u=" + url.QueryEscape(email)
}

// Register creates a local account and returns it with a session token
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: name, email and password are required", models.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, "", fmt.Errorf("%w: password must be at most 72 bytes", models.ErrValidation)
	}
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	avatar := in.Avatar
	if avatar == "" {
		avatar = defaultAvatar(email)
	}
	user := &models.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Avatar:       avatar,
		Birthday:     in.Birthday,
		Joined:       s.now(),
		Friends:      []string{},
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the password of the account registered under email
func (s *AuthService) Login(_ context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		return nil, "", fmt.Errorf("%w: user not found with email %s", models.ErrNotFound, email)
	}
	if user.PasswordHash == "" {
		return nil, "", fmt.Errorf("%w: account has no password, use Firebase login", models.ErrInvalidCredential)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid password", models.ErrInvalidCredential)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// FirebaseEnabled reports whether FirebaseLogin can be used
func (s *AuthService) FirebaseEnabled() bool {
	return s.firebase != nil
}

// FirebaseLogin verifies a Firebase ID token, links it to the local account
// with the same email (creating one if needed) and issues a local token.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.firebase == nil {
		return nil, "", fmt.Errorf("%w: firebase login is not configured", models.ErrNotFound)
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid Firebase ID token", models.ErrInvalidCredential)
	}
	email, _ := token.Claims["email"].(string)
	email = normalizeEmail(email)
	if email == "" {
		return nil, "", fmt.Errorf("%w: Firebase account has no email", models.ErrValidation)
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	user, err := s.users.GetUserByFirebaseUID(token.UID)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		user, err = s.users.GetUserByEmail(email)
		if errors.Is(err, models.ErrNotFound) {
			user, err = s.createFirebaseUser(ctx, token.UID, email, name, picture)
		} else if err == nil {
			user, err = s.users.UpdateUser(ctx, user.ID, func(u *models.User) error {
				u.FirebaseUID = token.UID
				return nil
			})
		}
		if err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	local, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, local, nil
}

func (s *AuthService) createFirebaseUser(ctx context.Context, uid, email, name, picture string) (*models.User, error) {
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if picture == "" {
		picture = defaultAvatar(email)
	}
	user := &models.User{
		ID:          s.newID(),
		Name:        name,
		Email:       email,
		FirebaseUID: uid,
		Avatar:      picture,
		Joined:      s.now(),
		Friends:     []string{},
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

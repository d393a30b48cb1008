package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/repository"
	"github.com/atinyakov/travelguide/internal/session"
	"github.com/atinyakov/travelguide/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists is returned by Register when the username is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned by Login for an unknown username and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserRepository defines the persistence operations required by AccountService.
type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// CreateUser fails with repository.ErrUsernameTaken on a duplicate username.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username          string  `json:"username" validate:"required,min=3,max=64"`
	Password          string  `json:"password" validate:"required,min=6,max=72"`
	Email             string  `json:"email" validate:"required,email"`
	FullName          *string `json:"fullName"`
	PreferredLanguage string  `json:"preferredLanguage" validate:"omitempty,min=2,max=8"`
	ProfileImage      *string `json:"profileImage" validate:"omitempty,url"`
}

// AccountService handles registration, password login and login sessions.
type AccountService struct {
	repo     UserRepository
	sessions session.Store
	ttl      time.Duration
	validate *validation.Validator
}

// NewAccountService constructs an AccountService. Sessions created by it
// expire after ttl.
func NewAccountService(repo UserRepository, sessions session.Store, ttl time.Duration, v *validation.Validator) *AccountService {
	return &AccountService{repo: repo, sessions: sessions, ttl: ttl, validate: v}
}

// HashPassword returns the bcrypt hash stored in place of a plain password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a user and opens a session for it.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, *models.Session, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, nil, err
	}
	// The max tag counts characters; bcrypt limits bytes.
	if len(in.Password) > maxPasswordBytes {
		return nil, nil, validation.Errors{{
			Field:   "password",
			Code:    "max",
			Message: fmt.Sprintf("must be at most %d bytes long", maxPasswordBytes),
		}}
	}

	existing, err := s.repo.GetUserByUsername(ctx, in.Username)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrUserExists
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.repo.CreateUser(ctx, models.User{
		Username:          in.Username,
		Password:          hash,
		Email:             in.Email,
		FullName:          in.FullName,
		PreferredLanguage: in.PreferredLanguage,
		ProfileImage:      in.ProfileImage,
	})
	if errors.Is(err, repository.ErrUsernameTaken) {
		return nil, nil, ErrUserExists
	}
	if err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Create(ctx, user.ID, s.ttl)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Login checks the password of username and opens a session on success.
func (s *AccountService) Login(ctx context.Context, username, password string) (*models.User, *models.Session, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID, s.ttl)
	if err != nil {
		return nil, nil, err
	}
	return user, sess, nil
}

// Logout ends the session sid. Unknown ids are not an error.
func (s *AccountService) Logout(ctx context.Context, sid string) error {
	return s.sessions.Delete(ctx, sid)
}

// Authenticate resolves a session id to its owner's user id. It returns 0 for
// unknown or expired sessions.
func (s *AccountService) Authenticate(ctx context.Context, sid string) (int64, error) {
	sess, err := s.sessions.Get(ctx, sid)
	if err != nil || sess == nil {
		return 0, err
	}
	return sess.UserID, nil
}

// Get returns the user with the given id, or nil if it does not exist.
func (s *AccountService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

package services

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/adapters/persistence/repositories"
	"skyfare/internal/core/domain"
	"skyfare/internal/metrics"
	"skyfare/internal/pkg/token"
)

// AuthService is the session manager: it issues, validates and revokes the
// opaque bearer tokens tied to user rows, and handles public sign-up.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// SignUpInput represents public registration input
type SignUpInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}

// SignUp registers a new user. The role is always CLIENT here; privileged
// creation goes through UserService.Create.
func (s *AuthService) SignUp(ctx context.Context, input *SignUpInput) (*models.UserResponse, error) {
	taken, err := s.userRepo.ExistsActiveUsername(ctx, input.Username)
	if err != nil {
		return nil, domain.StoreError(err)
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}

	user := &models.User{
		Name:     input.Name,
		Username: input.Username,
		Password: input.Password,
		Role:     domain.RoleClient,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.StoreError(err)
	}

	log.Printf("✅ User signed up: %s", user.Username)
	return user.ToResponse(), nil
}

// SignIn matches the credentials among non-deleted users and rotates the
// session token. A fresh token overwrites any prior one, so earlier sessions
// of the same user stop resolving.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.StoreError(err)
	}

	fresh := token.New()
	if err := s.userRepo.SetToken(ctx, user.ID, &fresh); err != nil {
		return "", domain.StoreError(err)
	}

	metrics.SignIns.Inc()
	log.Printf("✅ User signed in: %s", user.Username)
	return fresh, nil
}

// SignOut clears the token wherever it is currently held. Zero matched rows
// means the token is unknown or already cleared; more than one matched row is
// a uniqueness violation upstream and is surfaced, not swallowed.
func (s *AuthService) SignOut(ctx context.Context, tok string) error {
	if tok == "" {
		return domain.ErrNotLoggedIn
	}

	rows, err := s.userRepo.ClearToken(ctx, tok)
	if err != nil {
		return domain.StoreError(err)
	}

	switch {
	case rows == 0:
		return domain.ErrNotSignedIn
	case rows > 1:
		log.Printf("❌ Token uniqueness violated: %d users held the same session token", rows)
		return domain.ErrStoreInconsistency
	}

	return nil
}

// Resolve maps a bearer token to the acting identity. Blank and unknown
// tokens fail identically, before any further store access.
func (s *AuthService) Resolve(ctx context.Context, tok string) (domain.Actor, error) {
	if tok == "" {
		return domain.Actor{}, domain.ErrNotLoggedIn
	}

	user, err := s.userRepo.GetByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Actor{}, domain.ErrNotLoggedIn
		}
		return domain.Actor{}, domain.StoreError(err)
	}
	if user.IsDeleted {
		return domain.Actor{}, domain.ErrNotLoggedIn
	}

	return user.ToActor(), nil
}

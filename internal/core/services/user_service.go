package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"skyfare/internal/adapters/persistence/models"
	"skyfare/internal/adapters/persistence/repositories"
	"skyfare/internal/core/authz"
	"skyfare/internal/core/domain"
	"skyfare/internal/metrics"
)

// UserService handles privileged user management: create, read, update,
// listing and soft deletion with its ticket cascade.
type UserService struct {
	userRepo   repositories.UserRepository
	ticketRepo repositories.TicketRepository
	now        func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, ticketRepo repositories.TicketRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		now:        time.Now,
	}
}

// CreateUserInput represents privileged user creation input
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"`
}

// Create creates a user on behalf of a staff actor. Employees always end up
// creating clients regardless of the role they asked for.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, input *CreateUserInput) (*models.UserResponse, error) {
	if denial := authz.Authorize(actor, authz.OpCreateUser, nil); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}

	if input.Role == "" {
		return nil, domain.ErrRoleRequired
	}
	role := authz.RoleForCreatedUser(actor.Role, domain.Role(input.Role))
	if !role.Valid() {
		return nil, domain.ErrInvalidInput
	}

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
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, domain.StoreError(err)
	}

	log.Printf("✅ User created by %s: %s (role %s)", actor.Username, user.Username, user.Role)
	return user.ToResponse(), nil
}

// GetByID returns a user record, subject to the role visibility matrix.
func (s *UserService) GetByID(ctx context.Context, actor domain.Actor, id uint) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}

	target := &authz.Target{ID: user.ID, Role: user.Role}
	if denial := authz.Authorize(actor, authz.OpReadUser, target); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}

	return user.ToResponse(), nil
}

// List returns the users visible to the actor: everyone for administrators,
// clients only for employees, nothing for clients.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*models.UserResponse, error) {
	var (
		users []*models.User
		err   error
	)

	switch authz.ListUsersScope(actor.Role) {
	case authz.ScopeAll:
		users, err = s.userRepo.ListAll(ctx)
	case authz.ScopeClients:
		users, err = s.userRepo.ListByRole(ctx, domain.RoleClient)
	default:
		denial := domain.Deny(domain.RuleUserListScope, "clients cannot list users")
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}
	if err != nil {
		return nil, domain.StoreError(err)
	}

	responses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, user.ToResponse())
	}
	return responses, nil
}

// UpdateUserInput represents user update input. Nil fields are untouched.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Update applies the update matrix: administrators update anyone including
// roles, employees reach their own record and clients, clients only
// themselves. Credential fields are immutable through this path for every
// role.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, targetID uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}

	target := &authz.Target{ID: user.ID, Role: user.Role}
	if denial := authz.Authorize(actor, authz.OpUpdateUser, target); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return nil, denial
	}

	// Credential changes are out of scope for this operation, whoever asks.
	if input.Username != nil || input.Password != nil {
		return nil, domain.ErrImmutableCredentialField
	}

	if input.Role != nil && domain.Role(*input.Role) != user.Role {
		if denial := authz.CanChangeRole(actor); denial != nil {
			metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
			return nil, denial
		}
		role := domain.Role(*input.Role)
		if !role.Valid() {
			return nil, domain.ErrInvalidInput
		}
		user.Role = role
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, domain.StoreError(err)
	}

	return user.ToResponse(), nil
}

// SoftDelete marks the user deleted and cascades the flag to all their
// tickets, unless they still hold active tickets on future flights. The
// user's session token is dropped in the same pass.
func (s *UserService) SoftDelete(ctx context.Context, actor domain.Actor, id uint) error {
	if denial := authz.Authorize(actor, authz.OpDeleteUser, &authz.Target{ID: id}); denial != nil {
		metrics.AuthzDenials.WithLabelValues(denial.Rule).Inc()
		return denial
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}
	if user.IsDeleted {
		return domain.ErrAlreadyDeleted
	}

	pending, err := s.ticketRepo.CountFutureActiveByPassenger(ctx, user.ID, s.now())
	if err != nil {
		return domain.StoreError(err)
	}
	if pending > 0 {
		return domain.ErrHasFutureActiveTickets
	}

	user.IsDeleted = true
	user.Token = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return domain.StoreError(err)
	}

	cascaded, err := s.ticketRepo.SoftDeleteByPassenger(ctx, user.ID)
	if err != nil {
		return domain.StoreError(err)
	}

	log.Printf("🗑️ User %s soft-deleted by %s (%d tickets cascaded)", user.Username, actor.Username, cascaded)
	return nil
}

func (s *UserService) getUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.StoreError(err)
	}
	return user, nil
}

package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"lapor/internal/auth"
	"lapor/internal/engine"
	errs "lapor/internal/errors"
	"lapor/internal/model"
)

const bcryptCost = 10

// NewUser is the admin-provided part of a new profile.
type NewUser struct {
	PJLPNumber string
	Name       string
	Role       model.Role
	Phone      string
	AvatarURL  string
	Password   string
}

// UserService exposes profile management over the engine.
type UserService interface {
	List(ctx context.Context) []model.User
	Get(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, actor *model.User, input NewUser) (model.User, error)
	Update(ctx context.Context, actor *model.User, id string, patch model.UserPatch, newPassword string) (model.User, error)
	SoftDelete(ctx context.Context, actor *model.User, id string) error
	HardDelete(ctx context.Context, actor *model.User, id string) error
}

type userService struct {
	engine *engine.Engine
	gate   *auth.Gate
}

// NewUserService creates a user service over the engine.
func NewUserService(eng *engine.Engine, gate *auth.Gate) UserService {
	return &userService{engine: eng, gate: gate}
}

func (s *userService) List(ctx context.Context) []model.User {
	return s.engine.Users()
}

func (s *userService) Get(ctx context.Context, id string) (model.User, error) {
	user, ok := s.engine.UserByID(id)
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	return user, nil
}

// Create adds a new active profile with a hashed credential.
func (s *userService) Create(ctx context.Context, actor *model.User, input NewUser) (model.User, error) {
	if !input.Role.Valid() {
		return model.User{}, errs.ErrInvalidRole
	}
	user := model.User{
		PJLPNumber: input.PJLPNumber,
		Name:       input.Name,
		Role:       input.Role,
		IsActive:   true,
		Phone:      input.Phone,
		AvatarURL:  input.AvatarURL,
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return model.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	return s.engine.CreateUser(ctx, actor, user)
}

// Update applies a partial profile edit. Admins may edit anyone;
// everyone else only their own profile, and never their role or
// active flag. A non-empty newPassword is hashed into the patch.
// A self-edit refreshes the session copy.
func (s *userService) Update(ctx context.Context, actor *model.User, id string, patch model.UserPatch, newPassword string) (model.User, error) {
	if actor == nil {
		return model.User{}, errs.ErrForbidden
	}
	if actor.Role != model.RoleAdmin {
		if actor.ID != id {
			return model.User{}, errs.ErrForbidden
		}
		if patch.Role != nil || patch.IsActive != nil {
			return model.User{}, errs.ErrForbidden
		}
	}
	if newPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			return model.User{}, fmt.Errorf("hash password: %w", err)
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	updated, err := s.engine.UpdateUser(ctx, actor, id, patch)
	if err != nil {
		return model.User{}, err
	}
	if actor != nil && actor.ID == id {
		s.gate.RefreshSession()
	}
	return updated, nil
}

// SoftDelete deactivates an account. Deleting yourself is refused
// before any state is touched.
func (s *userService) SoftDelete(ctx context.Context, actor *model.User, id string) error {
	if actor != nil && actor.ID == id {
		return errs.ErrSelfDelete
	}
	return s.engine.SoftDeleteUser(ctx, actor, id)
}

// HardDelete permanently removes an account and its report history.
func (s *userService) HardDelete(ctx context.Context, actor *model.User, id string) error {
	if actor != nil && actor.ID == id {
		return errs.ErrSelfDelete
	}
	return s.engine.HardDeleteUser(ctx, actor, id)
}

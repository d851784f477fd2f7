package service

import (
	"errors"

	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
)

var (
	ErrInvalidRole           = errors.New("invalid role")
	ErrCannotDeleteSuperUser = errors.New("the superadmin account cannot be deleted")
	ErrCannotDeleteSelf      = errors.New("you cannot delete your own account")
)

// UserService handles the admin-facing user management operations
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List retrieves all users
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.List()
}

// UpdateRole changes a user's role. Only "user" and "admin" can be granted;
// superadmin is never assignable through this path.
func (s *UserService) UpdateRole(targetID uint, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete hard-deletes a user. Superadmin accounts and the caller's own
// account are refused.
func (s *UserService) Delete(callerID, targetID uint) error {
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleSuperAdmin {
		return ErrCannotDeleteSuperUser
	}
	if user.ID == callerID {
		return ErrCannotDeleteSelf
	}

	return s.userRepo.Delete(user.ID)
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inovotek/book-directory-api/internal/domain"
	"github.com/inovotek/book-directory-api/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateUserInput struct {
	FullName *string
	Email    *string
}

func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update lets a user change their own fullName and email. Updating any
// other account is forbidden.
func (s *UserService) Update(ctx context.Context, subject *domain.User, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if subject.ID != id {
		return nil, domain.ErrForbidden
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if *input.FullName == "" {
			return nil, domain.ErrValidation
		}
		user.FullName = *input.FullName
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, domain.ErrValidation
		}
		if *input.Email != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, *input.Email)
			if err == nil && existing != nil {
				return nil, domain.ErrEmailTaken
			}
			user.Email = *input.Email
		}
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

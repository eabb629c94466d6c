package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/repository"
	"github.com/sefazor/ourquotes-backend/pkg/utils"
)

type UserService struct {
	userRepo  UserStore
	validator *utils.Validator
}

func NewUserService(userRepo UserStore, validator *utils.Validator) *UserService {
	return &UserService{
		userRepo:  userRepo,
		validator: validator,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GetAccount returns the profile of targetID, which must be the acting user.
func (s *UserService) GetAccount(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	if actorID != targetID {
		return nil, &OwnershipError{Resource: "user", ID: targetID}
	}
	return s.GetUserByID(ctx, targetID)
}

// UpdateProfile changes the names and email of targetID. Only the user
// themselves may do so, and the email may only be taken by their own row.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, targetID uint, req models.UpdateProfileRequest) (*models.User, error) {
	if actorID != targetID {
		return nil, &OwnershipError{Resource: "user", ID: targetID}
	}

	email := strings.TrimSpace(req.Email)

	messages := s.validator.Collect(nameChecks(req.FirstName, req.LastName)...)
	messages = append(messages, s.validator.Collect(emailCheck(email))...)

	taken, err := s.userRepo.EmailTakenByOther(ctx, email, targetID)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		messages = append(messages, MsgEmailInUse)
	}
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	if err := s.userRepo.UpdateProfile(ctx, targetID, req.FirstName, req.LastName, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, &ValidationError{Messages: []string{MsgEmailInUse}}
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &models.User{
		ID:        targetID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sefazor/ourquotes-backend/internal/metrics"
	"github.com/sefazor/ourquotes-backend/internal/models"
	"github.com/sefazor/ourquotes-backend/internal/repository"
	"github.com/sefazor/ourquotes-backend/pkg/bcrypt"
	"github.com/sefazor/ourquotes-backend/pkg/utils"
	"go.uber.org/zap"
)

type AuthService struct {
	userRepo  UserStore
	likeRepo  LikeStore
	mailer    Mailer
	validator *utils.Validator
	metrics   *metrics.Metrics
	logger    *zap.Logger
	hashCost  int
}

type AuthServiceOption func(*AuthService)

// WithMailer enables the welcome email.
func WithMailer(mailer Mailer) AuthServiceOption {
	return func(s *AuthService) { s.mailer = mailer }
}

// WithHashCost overrides the bcrypt work factor.
func WithHashCost(cost int) AuthServiceOption {
	return func(s *AuthService) { s.hashCost = cost }
}

func NewAuthService(userRepo UserStore, likeRepo LikeStore, validator *utils.Validator, m *metrics.Metrics, logger *zap.Logger, opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		userRepo:  userRepo,
		likeRepo:  likeRepo,
		validator: validator,
		metrics:   m,
		logger:    logger,
		hashCost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates the submission, stores the new user and returns it.
// Every rule violation is reported at once in a *ValidationError.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)

	messages := s.validator.Collect(nameChecks(req.FirstName, req.LastName)...)
	messages = append(messages, s.validator.Collect(emailCheck(email))...)

	// Email kontrolü
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		messages = append(messages, MsgEmailInUse)
	}

	messages = append(messages, s.validator.Collect(passwordChecks(req.Password, req.PasswordConfirmation)...)...)
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	// Şifreyi hashle
	hashedPassword, err := bcrypt.HashPassword(req.Password, s.hashCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ValidationError{Messages: []string{MsgEmailInUse}}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.Registration()
	s.logger.Info("user registered", zap.Uint("user_id", user.ID))

	// Welcome email gönder
	if s.mailer != nil {
		go s.sendWelcome(user.Email, user.FirstName)
	}

	return &models.AuthResponse{
		User:          *user,
		LikedQuoteIDs: []uint{},
	}, nil
}

// Login checks the credentials and returns the user with the quotes they
// liked before. Any mismatch yields ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.Login(false)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !bcrypt.VerifyHash(user.PasswordHash) {
		s.logger.Error("stored password hash is malformed", zap.Uint("user_id", user.ID))
		s.metrics.Login(false)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.ComparePassword(user.PasswordHash, req.Password); err != nil {
		s.metrics.Login(false)
		return nil, ErrInvalidCredentials
	}

	liked, err := s.likeRepo.QuoteIDsLikedBy(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load liked quotes: %w", err)
	}

	s.metrics.Login(true)
	return &models.AuthResponse{
		User:          *user,
		LikedQuoteIDs: liked,
	}, nil
}

func (s *AuthService) sendWelcome(email, firstName string) {
	if err := s.mailer.SendWelcomeEmail(email, firstName); err != nil {
		s.logger.Warn("welcome email failed", zap.String("email", email), zap.Error(err))
	}
}

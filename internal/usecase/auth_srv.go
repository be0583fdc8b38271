package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo   repository.UserRepository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo repository.UserRepository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Username:     req.Username,
		PasswordHash: hash,
		Role:         entity.ParseRole(req.Role),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	token, err := utils.GenerateToken(s.config.JWT, user.ID, user.Username, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return &response.AuthResponse{
		Token: token,
		User:  response.UserToResponse(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// Same failure for unknown user and wrong password.
	if user == nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn("Login rejected", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.config.JWT, user.ID, user.Username, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return &response.AuthResponse{
		Token: token,
		User:  response.UserToResponse(user),
	}, nil
}

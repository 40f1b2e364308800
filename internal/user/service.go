package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gabrielmlima/quizhub/internal/auth"
	"github.com/gabrielmlima/quizhub/internal/config"
	"github.com/gabrielmlima/quizhub/internal/policy"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPasswordMismatch   = errors.New("password fields didn't match")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	if dto.Username == "" || dto.Password == "" {
		return nil, ErrMissingCredentials
	}
	if dto.Password != dto.Password2 {
		return nil, ErrPasswordMismatch
	}

	role := dto.Role
	if role == "" {
		role = policy.RoleUser
	}
	if role != policy.RoleAdmin && role != policy.RoleUser {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := User{
		Username:     dto.Username,
		Email:        dto.Email,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.repo.Create(&u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return toResponse(&u), nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*TokenPairResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByUsername(dto.Username)
	if err != nil {
		log.WithError(err).Error("Failed to look up user")
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	log := config.WithContext(ctx)

	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to look up user")
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return toResponse(u), nil
}

func (s *userService) issueTokens(u *User) (*TokenPairResponse, error) {
	access, err := auth.GenerateJWT(u.ID.String(), string(u.Role), auth.AccessTokenDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), string(u.Role), auth.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Package application 实现注册与登录用例
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nouressalam/storefront/internal/auth/domain"
	"github.com/nouressalam/storefront/pkg/idgen"
	"github.com/nouressalam/storefront/pkg/logger"
	"github.com/nouressalam/storefront/pkg/token"
)

const bcryptCost = 10

// AuthResponse 注册/登录响应
type AuthResponse struct {
	User         *domain.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    int64        `json:"expiresAt"`
}

// AuthService 认证应用服务
type AuthService struct {
	repo   domain.UserRepository
	tokens *token.Manager
	ids    *idgen.Generator
}

// NewAuthService 创建认证应用服务
func NewAuthService(repo domain.UserRepository, tokens *token.Manager, ids *idgen.Generator) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, ids: ids}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register 注册新用户并签发令牌
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.NewUser(
		"user-"+s.ids.NextString(),
		input.Email,
		string(hash),
		input.FirstName,
		input.LastName,
		input.Phone,
	)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	logger.Info(ctx, "User registered", "user_id", user.ID)
	return s.issue(user)
}

// Login 校验凭证并签发令牌。用户不存在与密码错误返回同一错误。
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*AuthResponse, error) {
	pair, err := s.tokens.GeneratePair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign tokens: %w", err)
	}
	return &AuthResponse{
		User:         user,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/repository"
	"github.com/iliyamo/lecture-hall-booking/internal/utils"
)

// SignupInput is a self-registration request.
type SignupInput struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
}

// AccountView is the public part of an account.
type AccountView struct {
	ID       uint64     `json:"id"`
	Username string     `json:"username"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// Session is returned by Signup and Login.
type Session struct {
	Account     AccountView       `json:"account"`
	AccessToken utils.AccessToken `json:"accessToken"`
}

type AuthService struct {
	accounts   *repository.AccountRepo
	secret     string
	ttlMin     int
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(accounts *repository.AccountRepo, secret string, ttlMin, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{accounts: accounts, secret: secret, ttlMin: ttlMin, bcryptCost: bcryptCost, logger: logger}
}

// Signup registers a STUDENT or PROFESSOR account and opens a session for
// it.  STAFF and ADMIN accounts are provisioned directly in the store.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, fmt.Errorf("%w: username, password, name and email are required", ErrValidation)
	}
	role, ok := model.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}
	if !role.SelfRegistrable() {
		return nil, fmt.Errorf("%w: role %s cannot self-register", ErrAccessDenied, role)
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password is longer than 72 bytes", ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %w", ErrStoreFailure, err)
	}
	acc := &model.Account{
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         role,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}
		s.logger.Error("store failure", zap.String("op", "create account"), zap.Error(err))
		return nil, fmt.Errorf("%w: create account: %w", ErrStoreFailure, err)
	}
	s.logger.Info("account created", zap.Uint64("account_id", acc.ID), zap.String("role", string(role)))
	return s.session(acc)
}

// Login verifies a username/password pair.  Unknown usernames and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	acc, err := s.accounts.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("store failure", zap.String("op", "get account"), zap.Error(err))
		return nil, fmt.Errorf("%w: get account: %w", ErrStoreFailure, err)
	}
	if !utils.VerifyPassword(acc.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if utils.NeedsRehash(acc.PasswordHash, s.bcryptCost) {
		s.rehash(ctx, acc, password)
	}
	return s.session(acc)
}

// rehash upgrades a hash made at an older, lower cost.  The login succeeds
// whether or not the upgrade is stored.
func (s *AuthService) rehash(ctx context.Context, acc *model.Account, password string) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err == nil {
		err = s.accounts.UpdatePasswordHash(ctx, acc.ID, hash)
	}
	if err != nil {
		s.logger.Warn("password rehash failed", zap.Uint64("account_id", acc.ID), zap.Error(err))
		return
	}
	acc.PasswordHash = hash
	s.logger.Info("password rehashed", zap.Uint64("account_id", acc.ID), zap.Int("cost", utils.PasswordCost(s.bcryptCost)))
}

func (s *AuthService) session(acc *model.Account) (*Session, error) {
	tok, err := utils.NewAccessToken(s.secret, acc.ID, string(acc.Role), s.ttlMin)
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %w", ErrStoreFailure, err)
	}
	return &Session{
		Account: AccountView{
			ID:       acc.ID,
			Username: acc.Username,
			Name:     acc.Name,
			Email:    acc.Email,
			Role:     acc.Role,
		},
		AccessToken: tok,
	}, nil
}

// Package services contains server-side business logic. This file implements
// UserService, which seeds the single default login, checks credentials and
// issues and verifies access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/logging"
	"github.com/dmitrijs2005/dailyjournal/internal/server/auth"
	"github.com/dmitrijs2005/dailyjournal/internal/server/config"
	"github.com/dmitrijs2005/dailyjournal/internal/server/models"
	"github.com/dmitrijs2005/dailyjournal/internal/server/repositories/repomanager"
	"github.com/golang-jwt/jwt/v5"
)

// UserService provides authentication-related operations:
// - EnsureDefaultUser: idempotently create the configured login
// - Login: verify credentials and mint an access token
// - Authenticate: resolve a bearer token to an active user
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	logger                      logging.Logger
	jwtSecret                   []byte
	signingMethod               *jwt.SigningMethodHMAC
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	defaultUserName             string
	defaultUserPassword         string
	now                         func() time.Time
	checkPassword               func(hash, password string) error

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) (*UserService, error) {
	method, err := auth.SigningMethod(cfg.TokenAlgorithm)
	if err != nil {
		return nil, err
	}
	return &UserService{
		db:                          db,
		repomanager:                 m,
		logger:                      logger,
		jwtSecret:                   []byte(cfg.SecretKey),
		signingMethod:               method,
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  cfg.BcryptCost,
		defaultUserName:             cfg.DefaultUserName,
		defaultUserPassword:         cfg.DefaultUserPassword,
		now:                         time.Now,
		checkPassword:               auth.CheckPassword,
	}, nil
}

// EnsureDefaultUser creates the configured default user unless a user with
// that name already exists. It reports whether a user was created.
func (s *UserService) EnsureDefaultUser(ctx context.Context) (bool, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByLogin(ctx, s.defaultUserName)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, fmt.Errorf("error looking up default user: %w", err)
	}

	hash, err := auth.HashPassword(s.defaultUserPassword, s.bcryptCost)
	if err != nil {
		return false, err
	}

	_, err = repo.Create(ctx, &models.User{UserName: s.defaultUserName, HashedPassword: hash})
	if err != nil {
		// another instance won the race
		if errors.Is(err, common.ErrorAlreadyExists) {
			return false, nil
		}
		return false, fmt.Errorf("error creating default user: %w", err)
	}

	s.logger.Info(ctx, "default user created", "username", s.defaultUserName)
	return true, nil
}

// Login verifies the password for userName and returns a signed access token.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same bcrypt cost as a real mismatch
			_ = s.checkPassword(s.fallbackHash(), password)
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "username", userName, "error", err)
		return "", common.ErrorInternal
	}

	if err := s.checkPassword(user.HashedPassword, password); err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return "", err
		}
		s.logger.Error(ctx, "password check failed", "username", userName, "error", err)
		return "", common.ErrorInternal
	}

	if !user.IsActive {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.UserName, s.jwtSecret, s.signingMethod, s.accessTokenValidityDuration, s.now())
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}

// fallbackHash is compared against when the user does not exist.
func (s *UserService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		h, err := auth.HashPassword("journal-placeholder", s.bcryptCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

// Authenticate verifies an access token and returns the active user it was
// issued for. Any token or user problem is reported as
// common.ErrorUnauthorized wrapping the cause.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", common.ErrorUnauthorized)
	}

	userName, err := auth.GetUserNameFromToken(token, s.jwtSecret, s.signingMethod)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown user", common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive user", common.ErrorUnauthorized)
	}

	return user, nil
}

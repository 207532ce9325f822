// Package services contains the server-side business logic. This file
// implements UserService: registration, login, token refresh, profile and
// account management. Every guarded operation takes the acting user
// explicitly; there is no server-side notion of a current session.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/everkeep/everkeep/internal/common"
	"github.com/everkeep/everkeep/internal/dbx"
	"github.com/everkeep/everkeep/internal/server/auth"
	"github.com/everkeep/everkeep/internal/server/authz"
	"github.com/everkeep/everkeep/internal/server/config"
	"github.com/everkeep/everkeep/internal/server/models"
	"github.com/everkeep/everkeep/internal/server/repositories/repomanager"
	"github.com/everkeep/everkeep/internal/server/validation"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ProfileUpdate carries the self-editable profile fields. Nil means "leave
// unchanged"; the stored defaults are light theme and notifications off.
type ProfileUpdate struct {
	ProfileName        *string
	ThemePreference    *models.Theme
	EmailNotifications *bool
}

type UserService struct {
	db                           *sql.DB
	repos                        repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repos:                        m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a pending user account. Succeeds exactly once per email;
// the storage uniqueness constraint serializes racing registrations and the
// duplicate surfaces as a validation error.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if err := validation.Email(email); err != nil {
		return nil, err
	}
	if err := validation.Password(password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:              uuid.New(),
		Email:           email,
		PasswordHash:    hash,
		Role:            models.RoleUser,
		Status:          models.AccountPending,
		ThemePreference: models.ThemeLight,
		CreatedAt:       now,
		LastLogin:       now,
	}

	created, err := s.repos.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ValidationError("Email is already registered")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return created, nil
}

// Login verifies credentials, then the approval gate, bumps lastLogin, and
// mints a token pair. Unknown email and wrong password are indistinguishable;
// a non-approved account is only reported after the credentials matched.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.AuthorizationError("Invalid credentials")
		}
		return nil, nil, fmt.Errorf("loading user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, nil, common.AuthorizationError("Invalid credentials")
	}

	if user.Status != models.AccountApproved {
		return nil, nil, common.AuthorizationError("Account not approved")
	}

	user.LastLogin = time.Now()
	if _, err := repo.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("updating last login: %w", err)
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repos.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.AuthorizationError("Invalid refresh token")
		}
		return nil, fmt.Errorf("searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the presented refresh token. The access token simply ages out.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repos.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("deleting refresh token: %w", err)
	}
	return nil
}

// GetByID loads an account by id. Used by the HTTP boundary to resolve the
// actor behind a verified token.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundError("User not found")
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the self-editable profile fields. Email and role are
// immutable here by construction.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, userID uuid.UUID, input ProfileUpdate) (*models.User, error) {
	if err := authz.Check(actor, authz.ActionUpdateProfile, authz.Target{UserID: userID}); err != nil {
		return nil, err
	}

	if input.ThemePreference != nil {
		if err := validation.Theme(*input.ThemePreference); err != nil {
			return nil, err
		}
	}

	repo := s.repos.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundError("User not found")
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if input.ProfileName != nil {
		user.ProfileName = input.ProfileName
	}
	if input.ThemePreference != nil {
		user.ThemePreference = *input.ThemePreference
	}
	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return updated, nil
}

// UpdateUserStatus moves a pending account to approved or rejected. Admin only.
func (s *UserService) UpdateUserStatus(ctx context.Context, actor *models.User, userID uuid.UUID, status models.AccountStatus) (*models.User, error) {
	if err := authz.Check(actor, authz.ActionUpdateStatus, authz.Target{UserID: userID}); err != nil {
		return nil, err
	}
	if err := validation.AccountStatus(status); err != nil {
		return nil, err
	}

	repo := s.repos.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFoundError("User not found")
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	user.Status = status
	updated, err := repo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}
	return updated, nil
}

// ResetPassword replaces the stored verifier. Allowed for the account holder
// and for admins.
func (s *UserService) ResetPassword(ctx context.Context, actor *models.User, userID uuid.UUID, newPassword string) error {
	if err := validation.Password(newPassword); err != nil {
		return err
	}
	if err := authz.Check(actor, authz.ActionResetPassword, authz.Target{UserID: userID}); err != nil {
		return err
	}

	repo := s.repos.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFoundError("User not found")
		}
		return fmt.Errorf("loading user: %w", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = hash

	if _, err := repo.Update(ctx, user); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// ListUsers returns all accounts. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := authz.Check(actor, authz.ActionListUsers, authz.Target{}); err != nil {
		return nil, err
	}
	list, err := s.repos.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return list, nil
}

// ListPendingUsers returns accounts awaiting approval. Admin only.
func (s *UserService) ListPendingUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := authz.Check(actor, authz.ActionListPending, authz.Target{}); err != nil {
		return nil, err
	}
	list, err := s.repos.Users(s.db).ListByStatus(ctx, models.AccountPending)
	if err != nil {
		return nil, fmt.Errorf("listing pending users: %w", err)
	}
	return list, nil
}

// DeleteUser removes the account and, through the storage cascade, its
// entries and tokens. Admin only.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, userID uuid.UUID) error {
	if err := authz.Check(actor, authz.ActionDeleteUser, authz.Target{UserID: userID}); err != nil {
		return err
	}
	if err := s.repos.Users(s.db).Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
// An existing account with the configured email is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if err := validation.Email(email); err != nil {
		return err
	}
	if err := validation.Password(password); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	name := "Admin"
	now := time.Now()
	admin := &models.User{
		ID:              uuid.New(),
		Email:           email,
		PasswordHash:    hash,
		Role:            models.RoleAdmin,
		Status:          models.AccountApproved,
		ProfileName:     &name,
		ThemePreference: models.ThemeLight,
		CreatedAt:       now,
		LastLogin:       now,
	}

	if _, err := s.repos.Users(s.db).Create(ctx, admin); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}

// --- helpers below ---

func (s *UserService) generateTokenPair(ctx context.Context, userID uuid.UUID, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID.String(), s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.AppError("Failed to issue tokens")
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.AppError("Failed to issue tokens")
	}
	if err := s.repos.RefreshTokens(db).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.AppError("Failed to issue tokens")
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

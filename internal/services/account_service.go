package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobadmin/internal/auth"
	applog "jobadmin/internal/log"
	"jobadmin/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
)

// JobPublisher queues background jobs. The AMQP client satisfies it.
// A nil publisher disables the corresponding features.
type JobPublisher interface {
	PublishResetMail(ctx context.Context, email, token string) error
	PublishEntryExport(ctx context.Context, kind, entryID, action string) error
}

// AccountService covers registration, login and credential management.
type AccountService struct {
	store      store.Store
	tokens     *auth.Tokens
	publisher  JobPublisher
	bcryptCost int
	resetTTL   time.Duration
}

func NewAccountService(st store.Store, tokens *auth.Tokens, publisher JobPublisher, bcryptCost int, resetTTL time.Duration) *AccountService {
	return &AccountService{
		store:      st,
		tokens:     tokens,
		publisher:  publisher,
		bcryptCost: bcryptCost,
		resetTTL:   resetTTL,
	}
}

// Register creates a user with a default business profile and returns a
// session token. Duplicate emails surface as store.ErrDuplicateEmail.
func (s *AccountService) Register(ctx context.Context, email, password, businessName, tradeType string) (store.User, string, error) {
	email = normalizeEmail(email)

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return store.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := store.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	profile := store.BusinessProfile{
		UserID:       user.ID,
		BusinessName: businessName,
		TradeType:    tradeType,
		TaxRate:      0.2,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, user, profile); err != nil {
		return store.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, now)
	if err != nil {
		return store.User{}, "", err
	}

	slog.InfoContext(ctx, "User registered", applog.FieldOperation, applog.OpRegister, applog.FieldUserID, user.ID)
	return user, token, nil
}

// Login verifies the password and issues a session token. Both unknown
// emails and wrong passwords report the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (store.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return store.User{}, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return store.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, time.Now())
	if err != nil {
		return store.User{}, "", err
	}
	return user, token, nil
}

// RequestPasswordReset stores a hashed single-use token and queues the
// email job. Unknown emails succeed silently so the endpoint can't be
// used to probe accounts.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		slog.InfoContext(ctx, "Password reset requested for unknown email", applog.FieldOperation, applog.OpPasswordReset)
		return nil
	}
	if err != nil {
		return err
	}

	raw, digest, err := auth.NewResetToken()
	if err != nil {
		return err
	}

	tok := store.ResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: digest,
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.store.CreateResetToken(ctx, tok); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "No job publisher wired, reset mail not queued", applog.FieldOperation, applog.OpPasswordReset, applog.FieldUserID, user.ID)
		return nil
	}
	if err := s.publisher.PublishResetMail(ctx, user.Email, raw); err != nil {
		return fmt.Errorf("queue reset mail: %w", err)
	}

	slog.InfoContext(ctx, "Password reset queued", applog.FieldOperation, applog.OpPasswordReset, applog.FieldUserID, user.ID)
	return nil
}

// ConfirmPasswordReset redeems a reset token and sets the new password.
func (s *AccountService) ConfirmPasswordReset(ctx context.Context, rawToken, newPassword string) error {
	tok, err := s.store.GetResetToken(ctx, auth.HashResetToken(rawToken))
	if errors.Is(err, store.ErrNotFound) {
		return ErrResetTokenInvalid
	}
	if err != nil {
		return err
	}
	if tok.Used || time.Now().After(tok.ExpiresAt) {
		return ErrResetTokenInvalid
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, tok.UserID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.store.MarkResetTokenUsed(ctx, tok.ID); err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}

	slog.InfoContext(ctx, "Password reset completed", applog.FieldOperation, applog.OpPasswordReset, applog.FieldUserID, tok.UserID)
	return nil
}

// ChangeEmail re-checks the password before switching the address.
func (s *AccountService) ChangeEmail(ctx context.Context, userID, newEmail, password string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	return s.store.UpdateUserEmail(ctx, userID, normalizeEmail(newEmail))
}

// ChangePassword re-checks the old password before setting the new one.
func (s *AccountService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdateUserPassword(ctx, userID, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

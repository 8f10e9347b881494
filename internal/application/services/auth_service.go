package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jlutz777/SimpleAddress/internal/domain/models"
	"github.com/jlutz777/SimpleAddress/pkg/auth"
	"github.com/jlutz777/SimpleAddress/pkg/errors"
	"github.com/jlutz777/SimpleAddress/pkg/utils"
	"go.uber.org/zap"
)

// AuthService handles registration, login sessions, and password changes
type AuthService struct {
	users    UserStore
	sessions SessionStore
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, sessions SessionStore, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, sessions: sessions, tokens: tokens, logger: logger}
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string           `json:"token"`
	User      auth.UserSession `json:"user"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Register creates a new account. User name, password and email address are
// all required and the user name must be unused.
func (s *AuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return nil, errors.NewValidationError("registration",
			"You must fill out user name, password, and email address to register.")
	}
	if !auth.IsValidEmail(email) {
		return nil, errors.NewValidationError("email_address", "Invalid email address")
	}
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return nil, errors.NewValidationError("password", err.Error())
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("user", "username", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash, CreatedDate: time.Now().UTC()}
	if err := s.users.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Login authenticates a user and creates a session
func (s *AuthService) Login(ctx context.Context, username, password, ip, userAgent string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(password, user.PasswordHash) {
		s.logger.Warn("login failed", zap.String("username", username))
		return nil, errors.NewUnauthorizedError("User name and/or password were incorrect.")
	}

	session := auth.UserSession{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
	}

	token, claims, err := s.tokens.GenerateToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	expiresAt := claims.ExpiresAt.Time

	if err := s.sessions.InsertSession(ctx, &models.Session{
		ID:           claims.ID,
		UserID:       session.ID,
		Username:     user.Username,
		Token:        token,
		ExpiresAt:    expiresAt,
		IPAddress:    ip,
		UserAgent:    userAgent,
		LastActivity: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &LoginResult{Token: token, User: session, ExpiresAt: expiresAt}, nil
}

// ValidateSession checks that a token is correctly signed, unexpired, and
// backed by a session that has not been revoked.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Invalid or expired token")
	}

	session, err := s.sessions.GetSession(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.NewUnauthorizedError("Session not found")
	}
	if !session.Active(time.Now()) {
		return nil, errors.NewUnauthorizedError("Session has been revoked or has expired")
	}
	if session.Username != claims.User.Username {
		return nil, errors.NewUnauthorizedError("Session does not match token")
	}
	return claims, nil
}

// TouchSession updates the last activity timestamp for a session in the
// background. Failures are logged and otherwise ignored.
func (s *AuthService) TouchSession(sessionID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.sessions.UpdateLastActivity(ctx, sessionID); err != nil {
			s.logger.Debug("touch session failed", zap.String("session", sessionID), zap.Error(err))
		}
	}()
}

// Logout revokes the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := auth.DecodeToken(token)
	if err != nil || !utils.IsValidUUID(claims.ID) {
		return errors.NewValidationError("token", "Invalid token")
	}
	if err := s.sessions.RevokeSession(ctx, claims.ID); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.String("username", claims.User.Username), zap.String("session", claims.ID))
	return nil
}

// ChangePassword updates a user's password and revokes all of their sessions,
// including the one making the request.
func (s *AuthService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	if err := auth.ValidatePasswordStrength(newPassword); err != nil {
		return errors.NewValidationError("password", err.Error())
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.NewNotFoundError("user", username)
	}
	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return errors.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, username, hash); err != nil {
		return err
	}
	if err := s.sessions.RevokeUserSessions(ctx, username); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("username", username))
	return nil
}

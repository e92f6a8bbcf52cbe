package service

import (
	"context"
	"fmt"
	"time"

	"pizza-shop/internal/model"
	"pizza-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// sessionClaims binds a token to a server-side session row, so logout
// revokes the token before its expiry.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// authService implements AuthService with bcrypt credential hashing and
// HS256 session tokens backed by a sessions table.
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	secret      []byte
	sessionTTL  time.Duration
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	secret string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		secret:      []byte(secret),
		sessionTTL:  sessionTTL,
		logger:      logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new user with an empty cart.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	for field, value := range map[string]string{
		"firstName": input.FirstName,
		"lastName":  input.LastName,
		"email":     input.Email,
		"username":  input.Username,
		"password":  input.Password,
	} {
		if value == "" {
			return nil, model.NewMissingFieldError(field)
		}
	}

	if !model.ValidEmail(input.Email) {
		return nil, model.NewDomainError(model.ErrCodeValidation, "The email is invalid")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hash),
		Admin:        false,
		Cart:         model.EmptyCart(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login verifies credentials and starts a session.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if username == "" {
		return nil, "", model.NewMissingFieldError("username")
	}
	if password == "" {
		return nil, "", model.NewMissingFieldError("password")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", model.ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug().Str("username", username).Msg("password mismatch")
		return nil, "", model.ErrWrongCredentials
	}

	now := time.Now()
	session := &model.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(session, user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("login successful")
	return user, token, nil
}

// Logout ends the session.
func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID.String()).Msg("logout successful")
	return nil
}

// ChangePassword verifies the old password and replaces it.
func (s *authService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return model.NewMissingFieldError("oldPassword")
	}
	if newPassword == "" {
		return model.NewMissingFieldError("newPassword")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return model.ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("password changed")
	return nil
}

// Authenticate resolves a session token into its user and session id.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, uuid.UUID, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, uuid.Nil, model.ErrUnauthorised
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, uuid.Nil, model.ErrUnauthorised
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if session == nil {
		return nil, uuid.Nil, model.ErrUnauthorised
	}
	if session.Expired(time.Now()) {
		// Best effort cleanup; the 401 does not depend on it.
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", session.ID.String()).Msg("failed to delete expired session")
		}
		return nil, uuid.Nil, model.ErrUnauthorised
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if user == nil {
		return nil, uuid.Nil, model.ErrUnauthorised
	}

	return user, session.ID, nil
}

func (s *authService) signToken(session *model.Session, user *model.User) (string, error) {
	claims := sessionClaims{
		SessionID: session.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

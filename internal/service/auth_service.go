package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"campaignhub/api/internal/ids"
	"campaignhub/api/internal/models"
	"campaignhub/api/internal/repository"
	"campaignhub/api/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("account is inactive")
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

type AuthService struct {
	users  *repository.UserRepository
	tokens *security.TokenService
	log    zerolog.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *security.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Role      models.UserRole
	FirstName string
	LastName  string
}

// AuthResult carries the freshly minted token pair and the sanitized user.
// The password hash never leaves models.User's json:"-" field.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         models.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if _, err := s.users.FindByEmailOrUsername(ctx, input.Email, input.Username); err == nil {
		return AuthResult{}, ErrUserExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	role := input.Role
	if role == "" {
		role = models.UserRoleViewer
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Status:       models.UserStatusActive,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")

	return s.issuePair(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if user.Status != models.UserStatusActive {
		return AuthResult{}, ErrUserInactive
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Refresh verifies the refresh token against its own secret and mints a new
// access+refresh pair. The old refresh token is simply never re-issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	identity, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return AuthResult{}, ErrInvalidRefresh
	}

	user, err := s.users.GetByID(ctx, identity.ID)
	if err != nil {
		return AuthResult{}, ErrInvalidRefresh
	}
	if user.Status != models.UserStatusActive {
		return AuthResult{}, ErrInvalidRefresh
	}

	return s.issuePair(user)
}

func (s *AuthService) issuePair(user models.User) (AuthResult, error) {
	identity := security.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.Role),
	}

	access, err := s.tokens.IssueAccess(identity)
	if err != nil {
		return AuthResult{}, err
	}
	refresh, err := s.tokens.IssueRefresh(identity)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}

package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/cryptogear/backend/pkg/auth"
	"github.com/cryptogear/backend/pkg/auth/session"
	"github.com/cryptogear/backend/pkg/config"
	"github.com/cryptogear/backend/pkg/db/models"
	"github.com/cryptogear/backend/pkg/errors"
	"github.com/cryptogear/backend/pkg/security"
)

// sessionWriter records and revokes server-side sessions keyed by the
// JWT's jti claim.
type sessionWriter interface {
	Create(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

// RegisterInput is the account creation payload.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

// LoginInput is the credential payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service owns account registration, credential checks and token
// issuance.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (TokenDTO, error)
	Login(ctx context.Context, input LoginInput) (TokenDTO, error)
	Me(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	repo     Repository
	sessions sessionWriter
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

// NewService wires the auth service.
func NewService(repo Repository, sessions sessionWriter, jwt config.JWTConfig, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auth: repository is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("auth: session manager is required")
	}
	if jwt.Secret == "" {
		return nil, fmt.Errorf("auth: jwt secret is required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		jwt:      jwt,
		password: password,
		now:      time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (TokenDTO, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return TokenDTO{}, errors.New(errors.CodeValidation, "email is required")
	}
	if len(input.Password) < 8 {
		return TokenDTO{}, errors.New(errors.CodeValidation, "password must be at least 8 characters")
	}
	if strings.TrimSpace(input.Name) == "" {
		return TokenDTO{}, errors.New(errors.CodeValidation, "name is required")
	}

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return TokenDTO{}, errors.Wrap(errors.CodeInternal, err, "check existing email")
	}
	if exists {
		return TokenDTO{}, errors.New(errors.CodeValidation, "email already registered")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return TokenDTO{}, errors.Wrap(errors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, &models.User{
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
	})
	if err != nil {
		return TokenDTO{}, errors.Wrap(errors.CodeInternal, err, "create user")
	}

	return s.issueToken(ctx, user)
}

func (s *service) Login(ctx context.Context, input LoginInput) (TokenDTO, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return TokenDTO{}, errors.New(errors.CodeValidation, "email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return TokenDTO{}, errors.New(errors.CodeUnauthorized, "invalid email or password")
		}
		return TokenDTO{}, errors.Wrap(errors.CodeInternal, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return TokenDTO{}, errors.Wrap(errors.CodeInternal, err, "verify password")
	}
	if !ok {
		return TokenDTO{}, errors.New(errors.CodeUnauthorized, "invalid email or password")
	}

	return s.issueToken(ctx, user)
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, errors.New(errors.CodeUnauthorized, "account no longer exists")
		}
		return UserDTO{}, errors.Wrap(errors.CodeInternal, err, "load user")
	}
	return NewUserDTO(user), nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) issueToken(ctx context.Context, user *models.User) (TokenDTO, error) {
	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    accessID,
	})
	if err != nil {
		return TokenDTO{}, errors.Wrap(errors.CodeInternal, err, "mint access token")
	}
	if err := s.sessions.Create(ctx, accessID, user.ID); err != nil {
		return TokenDTO{}, errors.Wrap(errors.CodeInternal, err, "create session")
	}
	return TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
		User:        NewUserDTO(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

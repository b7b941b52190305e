package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/callscope/core/internal/models"
	"github.com/callscope/core/internal/pkg/hashing"
	"github.com/callscope/core/internal/pkg/token"
)

type Service struct {
	store  UserStore
	issuer *token.Issuer
	logger *zap.Logger
}

func NewService(store UserStore, issuer *token.Issuer, logger *zap.Logger) *Service {
	return &Service{store: store, issuer: issuer, logger: logger}
}

// NormalizeEmail lowercases and trims an email so lookups and the unique
// index agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Signup(ctx context.Context, dto *SignupDTO) (*models.UserAccount, error) {
	hash, err := hashing.Hash(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.UserAccount{
		FirstName: strings.TrimSpace(dto.FirstName),
		LastName:  strings.TrimSpace(dto.LastName),
		Email:     NormalizeEmail(dto.Email),
		Password:  hash,
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("email", u.Email))
	return u, nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (string, *models.UserAccount, error) {
	u, err := s.store.FindByEmail(ctx, NormalizeEmail(dto.Email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	ok, err := hashing.Verify(dto.Password, u.Password)
	if err != nil {
		s.logger.Warn("stored password hash unreadable", zap.String("email", u.Email), zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}
	if !ok {
		return "", nil, ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(u.ID.Hex(), u.Email, u.FirstName)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, u, nil
}

func (s *Service) GetProfile(ctx context.Context, id string) (*models.UserAccount, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// ValidateToken verifies a raw session token and returns its claims.
func (s *Service) ValidateToken(raw string) (*token.Claims, error) {
	return s.issuer.Verify(raw)
}

// UpdateProfile applies the fields present in dto and leaves the rest
// alone. Email is immutable; a new password is re-hashed before storage.
func (s *Service) UpdateProfile(ctx context.Context, id string, dto *UpdateProfileDTO) (*models.UserAccount, error) {
	upd := &ProfileUpdate{FirstName: dto.FirstName, LastName: dto.LastName}
	if dto.Password != nil {
		hash, err := hashing.Hash(*dto.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		upd.PasswordHash = &hash
	}
	return s.store.UpdateByID(ctx, id, upd)
}

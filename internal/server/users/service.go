// Package users implements the registration and login use cases on top of
// an abstract user store, the password hasher, and the token issuer.
package users

import (
	"context"
	"errors"
	"time"

	"github.com/medvault/medvault/internal/common"
	"github.com/medvault/medvault/internal/server/auth"
)

// Service coordinates registration and login:
// - Register: eligibility gate, duplicate check, hash, create
// - Login: credential verification and token issuance
//
// Expected business failures are reported through the sentinel errors in
// the common package; only infrastructure faults surface as ErrorInternal.
type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	issuer *auth.TokenIssuer

	// now is swappable in tests
	now func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository, hasher auth.PasswordHasher, issuer *auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		now:    time.Now,
	}
}

// Register creates a new user account. It performs exactly one write, the
// insert, and only after the age gate and the duplicate check have passed.
// No token is issued at registration; the caller must log in afterwards.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {

	if !IsEligibleAge(req.DateOfBirth, s.now()) {
		return nil, common.ErrorIneligibleAge
	}

	exists, err := s.repo.Exists(ctx, req.Email)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		DateOfBirth:  req.DateOfBirth,
	}

	if _, err := s.repo.Create(ctx, user); err != nil {
		// the exists check and the insert are not atomic: a concurrent
		// registration may have won the race, in which case the store's
		// unique constraint reports the duplicate
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	return &AuthResult{Email: user.Email, FullName: user.FullName}, nil
}

// Login verifies the credentials and issues a session token. A missing user
// and a wrong password produce the same ErrorUnauthorized outcome so the
// caller cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {

	user, err := s.repo.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, expiresAt, err := s.issuer.Issue(user.ID, user.Email, user.FullName, s.now())
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{
		Email:     user.Email,
		FullName:  user.FullName,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

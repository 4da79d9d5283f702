package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medvault/medvault/internal/common"
	"github.com/medvault/medvault/internal/server/auth"
)

// --- helpers ---

type fakeRepo struct {
	existsOut bool
	existsErr error

	createOut   *User
	createErr   error
	lastCreated *User

	getOut *User
	getErr error

	existsCalls int
	createCalls int
	getCalls    int
}

func (f *fakeRepo) Exists(ctx context.Context, email string) (bool, error) {
	f.existsCalls++
	return f.existsOut, f.existsErr
}

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	f.createCalls++
	f.lastCreated = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "1"
	return u, nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

var testNow = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	issuer, err := auth.NewTokenIssuer("test-secret", "medvault", "medvault-clients", 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer error: %v", err)
	}
	s := NewService(repo, auth.NewBcryptHasher(4), issuer)
	s.now = func() time.Time { return testNow }
	return s
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Email:       "alice@example.com",
		Password:    "Secret123!",
		FullName:    "Alice Liddell",
		DateOfBirth: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(t, repo)

	result, err := s.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if result.Email != "alice@example.com" || result.FullName != "Alice Liddell" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Token != "" || !result.ExpiresAt.IsZero() {
		t.Fatalf("registration must not issue a token, got %+v", result)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected exactly one insert, got %d", repo.createCalls)
	}
}

func TestRegister_HashesPasswordBeforeStoring(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(t, repo)

	if _, err := s.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	stored := repo.lastCreated
	if stored == nil {
		t.Fatalf("expected a stored user")
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "Secret123!" {
		t.Fatalf("raw password must never reach the store")
	}
	if !auth.NewBcryptHasher(4).Verify("Secret123!", stored.PasswordHash) {
		t.Fatalf("stored hash must verify against the raw password")
	}
}

func TestRegister_IneligibleAge(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(t, repo)

	req := registerRequest()
	req.DateOfBirth = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC) // age 74 at testNow

	_, err := s.Register(context.Background(), req)
	if !errors.Is(err, common.ErrorIneligibleAge) {
		t.Fatalf("expected ErrorIneligibleAge, got %v", err)
	}
	if repo.existsCalls != 0 || repo.createCalls != 0 {
		t.Fatalf("ineligible registration must not touch the store")
	}
}

func TestRegister_SixtyFifthBirthdayToday(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestService(t, repo)

	req := registerRequest()
	req.DateOfBirth = time.Date(1959, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.Register(context.Background(), req)
	if !errors.Is(err, common.ErrorIneligibleAge) {
		t.Fatalf("expected ErrorIneligibleAge on the 65th birthday, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &fakeRepo{existsOut: true}
	s := newTestService(t, repo)

	_, err := s.Register(context.Background(), registerRequest())
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("duplicate registration must not insert")
	}
}

func TestRegister_DuplicateFromUniqueConstraint(t *testing.T) {
	// the exists check passed, but a concurrent registration won the race
	// and the insert hit the unique constraint
	repo := &fakeRepo{existsOut: false, createErr: common.ErrorAlreadyExists}
	s := newTestService(t, repo)

	_, err := s.Register(context.Background(), registerRequest())
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("expected ErrorAlreadyExists, got %v", err)
	}
}

func TestRegister_StoreErrors(t *testing.T) {
	t.Run("exists check fails", func(t *testing.T) {
		repo := &fakeRepo{existsErr: errors.New("db down")}
		s := newTestService(t, repo)

		_, err := s.Register(context.Background(), registerRequest())
		if !errors.Is(err, common.ErrorInternal) {
			t.Fatalf("expected ErrorInternal, got %v", err)
		}
		if repo.createCalls != 0 {
			t.Fatalf("must not insert after a failed existence check")
		}
	})

	t.Run("insert fails", func(t *testing.T) {
		repo := &fakeRepo{createErr: errors.New("db down")}
		s := newTestService(t, repo)

		_, err := s.Register(context.Background(), registerRequest())
		if !errors.Is(err, common.ErrorInternal) {
			t.Fatalf("expected ErrorInternal, got %v", err)
		}
	})
}

// --- Login ---

func storedUser(t *testing.T) *User {
	t.Helper()
	hash, err := auth.NewBcryptHasher(4).Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	return &User{
		ID:           "42",
		Email:        "alice@example.com",
		PasswordHash: hash,
		FullName:     "Alice Liddell",
		DateOfBirth:  time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLogin_Success(t *testing.T) {
	repo := &fakeRepo{getOut: storedUser(t)}
	s := newTestService(t, repo)

	result, err := s.Login(context.Background(), Credentials{Email: "alice@example.com", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a non-empty token")
	}
	if want := testNow.Add(24 * time.Hour); !result.ExpiresAt.Equal(want) {
		t.Fatalf("expiry mismatch: got %v want %v", result.ExpiresAt, want)
	}

	claims, err := s.issuer.ParseClaims(result.Token)
	if err != nil {
		t.Fatalf("ParseClaims error: %v", err)
	}
	if claims.Subject != "42" || claims.Email != "alice@example.com" || claims.FullName != "Alice Liddell" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_UnknownUserAndWrongPasswordAreIndistinguishable(t *testing.T) {
	unknown := &fakeRepo{getErr: common.ErrorNotFound}
	s := newTestService(t, unknown)

	_, errUnknown := s.Login(context.Background(), Credentials{Email: "nobody@example.com", Password: "Secret123!"})

	known := &fakeRepo{getOut: storedUser(t)}
	s = newTestService(t, known)

	_, errWrongPassword := s.Login(context.Background(), Credentials{Email: "alice@example.com", Password: "wrong"})

	if !errors.Is(errUnknown, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for unknown user, got %v", errUnknown)
	}
	if !errors.Is(errWrongPassword, common.ErrorUnauthorized) {
		t.Fatalf("expected ErrorUnauthorized for wrong password, got %v", errWrongPassword)
	}
	if errUnknown != errWrongPassword {
		t.Fatalf("both failures must be the identical outcome: %v vs %v", errUnknown, errWrongPassword)
	}
}

func TestLogin_StoreError(t *testing.T) {
	repo := &fakeRepo{getErr: errors.New("db down")}
	s := newTestService(t, repo)

	_, err := s.Login(context.Background(), Credentials{Email: "alice@example.com", Password: "Secret123!"})
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("expected ErrorInternal, got %v", err)
	}
}

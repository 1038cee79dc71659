package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"bookcatalog/internal/models"
	"bookcatalog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSigningKey = "test-signing-key"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockAuthRepo) Create(username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func newTestAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, testSigningKey, 24*time.Hour)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(h)
}

// --- Register ---

func TestAuthService_Register_IssuesVerifiableToken(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) { return nil, nil },
		CreateFn:        func(username, hash string) (int, error) { return 42, nil },
	}
	svc := newTestAuthService(mock)

	token, err := svc.Register("alice", "s3cret123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	// The stored hash must verify, and must not be the raw password.
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.hash == "s3cret123" {
		t.Error("password stored in plaintext")
	}
	if err := verifyPassword(call.hash, "s3cret123"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	// The token must round-trip to the new user's id.
	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected user id 42 in token, got %d", id)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"empty password", "alice", ""},
		{"blank password", "alice", "   "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockAuthRepo{
				GetByUsernameFn: func(string) (*models.User, error) {
					t.Fatal("store must not be consulted for missing fields")
					return nil, nil
				},
				CreateFn: func(string, string) (int, error) { return 0, nil },
			}
			if _, err := newTestAuthService(mock).Register(tc.username, tc.password); !errors.Is(err, ErrMissingCredentials) {
				t.Fatalf("expected ErrMissingCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
		CreateFn: func(string, string) (int, error) {
			t.Fatal("Create must not be called when the username exists")
			return 0, nil
		},
	}
	if _, err := newTestAuthService(mock).Register("alice", "whatever"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

// repositoryDuplicate mimics the wrapped error a repository returns for a
// UNIQUE-constraint rejection.
func repositoryDuplicate() error {
	return fmt.Errorf(`insert user "alice": %w`, repository.ErrDuplicateKey)
}

// Two registrations racing past the existence check: the store rejects the
// second writer and the service reports the same conflict.
func TestAuthService_Register_DuplicateRaceAtStore(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(string) (*models.User, error) { return nil, nil },
		CreateFn: func(username, hash string) (int, error) {
			return 0, repositoryDuplicate()
		},
	}
	if _, err := newTestAuthService(mock).Register("alice", "pw"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

// --- Login ---

func TestAuthService_Login_Success(t *testing.T) {
	hash := mustHash(t, "s3cret123")
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 7, Username: username, PasswordHash: hash}, nil
		},
	}
	svc := newTestAuthService(mock)

	token, err := svc.Login("alice", "s3cret123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected user id 7, got %d", id)
	}
}

// A wrong password and an unknown username must be indistinguishable.
func TestAuthService_Login_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	hash := mustHash(t, "right")

	wrongPw := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 7, Username: username, PasswordHash: hash}, nil
		},
	}
	_, errWrong := newTestAuthService(wrongPw).Login("alice", "wrong")

	unknown := &mockAuthRepo{
		GetByUsernameFn: func(string) (*models.User, error) { return nil, nil },
	}
	_, errUnknown := newTestAuthService(unknown).Login("ghost", "whatever")

	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatalf("failure causes are distinguishable: %q vs %q", errWrong, errUnknown)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(string) (*models.User, error) {
			t.Fatal("store must not be consulted for missing fields")
			return nil, nil
		},
	}
	if _, err := newTestAuthService(mock).Login("", ""); !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

// --- ParseToken ---

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	// token signed with the right key but already past its window
	past := time.Now().Add(-2 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
		UserID: 42,
	})
	signed, err := token.SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ParseToken(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{})

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.ParseToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewAuthService(&mockAuthRepo{
			GetByUsernameFn: func(string) (*models.User, error) { return nil, nil },
			CreateFn:        func(string, string) (int, error) { return 1, nil },
		}, "a-different-key", 24*time.Hour)
		token, err := other.Register("mallory", "pw")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		if _, err := svc.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

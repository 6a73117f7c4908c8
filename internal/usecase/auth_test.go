package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	pkgAuth "github.com/polkiloo/gobank/internal/pkg/auth"
	"github.com/polkiloo/gobank/internal/pkg/ratelimit"
	testhelpers "github.com/polkiloo/gobank/internal/test"
)

const clientIP = "203.0.113.7"

type authFixture struct {
	store  *testhelpers.BankStore
	tokens *testhelpers.SequenceTokens
	audit  *testhelpers.AuditRecorder
	uc     *AuthUseCase
}

func newAuthFixture() *authFixture {
	store := testhelpers.NewBankStore()
	tokens := &testhelpers.SequenceTokens{}
	audit := &testhelpers.AuditRecorder{}
	sessions := NewSessionUseCase(store.Sessions(), tokens, 0)
	uc := NewAuthUseCase(store.Users(), testhelpers.HasherStub{}, sessions, ratelimit.NewAttemptTable(0), audit)
	return &authFixture{store: store, tokens: tokens, audit: audit, uc: uc}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	f := newAuthFixture()

	user, err := f.uc.Register(context.Background(), clientIP, "alice", "pw1")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if !user.Balance.IsZero() {
		t.Fatalf("expected zero balance, got %s", user.Balance)
	}
	stored, ok := f.store.User("alice")
	if !ok {
		t.Fatalf("expected user in repository")
	}
	if stored.PasswordHash != "hash:pw1" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
	if events := f.audit.Events(); len(events) != 0 {
		t.Fatalf("unexpected audit events: %v", events)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	f := newAuthFixture()

	ctx := context.Background()
	if _, err := f.uc.Register(ctx, clientIP, "bob", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, err := f.uc.Register(ctx, clientIP, "bob", "secret"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	ev, _ := f.audit.Last()
	if ev.Level != "WARNING" || ev.IP != clientIP || ev.Msg != "Attempted to register existing user: bob" {
		t.Fatalf("unexpected audit event %+v", ev)
	}
}

func TestAuthUseCaseRegisterMissingCredentials(t *testing.T) {
	f := newAuthFixture()

	cases := [][2]string{{"", "pw"}, {"dave", ""}, {"", ""}}
	for _, c := range cases {
		if _, err := f.uc.Register(context.Background(), clientIP, c[0], c[1]); !errors.Is(err, domainErrors.ErrMissingCredentials) {
			t.Fatalf("expected missing credentials for %q/%q, got %v", c[0], c[1], err)
		}
	}
	events := f.audit.Events()
	if len(events) != len(cases) || events[0].Msg != "Registration attempt with missing credentials" {
		t.Fatalf("unexpected audit events %v", events)
	}
}

func TestAuthUseCaseUsernameIsKeptVerbatim(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, err := f.uc.Register(ctx, clientIP, " alice", "pw1"); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, ok := f.store.User(" alice"); !ok {
		t.Fatalf("expected username stored as sent")
	}
	if _, ok := f.store.User("alice"); ok {
		t.Fatalf("username must not be trimmed")
	}
	if _, err := f.uc.Register(ctx, clientIP, "alice", "pw2"); err != nil {
		t.Fatalf("expected distinct user alice, got %v", err)
	}
	if _, err := f.uc.Login(ctx, clientIP, "alice", "pw1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for trimmed name, got %v", err)
	}
	if _, err := f.uc.Register(ctx, clientIP, "   ", "pw"); err != nil {
		t.Fatalf("expected whitespace username to register, got %v", err)
	}
}

func TestAuthUseCaseRegisterPasswordTooLong(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	tooLong := strings.Repeat("x", pkgAuth.MaxPasswordLength+1)
	if _, err := f.uc.Register(ctx, clientIP, "frank", tooLong); !errors.Is(err, domainErrors.ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if _, ok := f.store.User("frank"); ok {
		t.Fatalf("user must not be stored with oversized password")
	}
	ev, _ := f.audit.Last()
	if ev.Level != "WARNING" || ev.Msg != "Registration attempt with oversized password for user: frank" {
		t.Fatalf("unexpected audit event %+v", ev)
	}

	f.uc.hasher = testhelpers.HasherStub{HashFn: func(string) (string, error) { return "", pkgAuth.ErrPasswordTooLong }}
	if _, err := f.uc.Register(ctx, clientIP, "frank", "short"); !errors.Is(err, domainErrors.ErrPasswordTooLong) {
		t.Fatalf("expected hasher limit mapped to ErrPasswordTooLong, got %v", err)
	}
}

func TestAuthUseCaseRegisterHashFailure(t *testing.T) {
	f := newAuthFixture()
	f.uc.hasher = testhelpers.HasherStub{HashFn: func(string) (string, error) { return "", testhelpers.ErrStub }}

	if _, err := f.uc.Register(context.Background(), clientIP, "eve", "pw"); !errors.Is(err, testhelpers.ErrStub) {
		t.Fatalf("expected hash error, got %v", err)
	}
	if _, ok := f.store.User("eve"); ok {
		t.Fatalf("user must not be stored when hashing fails")
	}
}

func TestAuthUseCaseLogin(t *testing.T) {
	f := newAuthFixture()

	ctx := context.Background()
	if _, err := f.uc.Register(ctx, clientIP, "carol", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := f.uc.Login(ctx, clientIP, "carol", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	ev, _ := f.audit.Last()
	if ev.Msg != "Failed login attempt for user: carol" {
		t.Fatalf("unexpected audit message %q", ev.Msg)
	}

	token, err := f.uc.Login(ctx, clientIP, "carol", "123456")
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	identity, err := f.store.Sessions().Resolve(ctx, token)
	if err != nil || identity.Username != "carol" {
		t.Fatalf("expected session for carol, got %v %v", identity, err)
	}
}

func TestAuthUseCaseRandomCredentials(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	for i := 0; i < ratelimit.MaxLoginAttempts; i++ {
		username := testhelpers.RandomUsername("acct-")
		password := testhelpers.RandomPassword(8 + i*16)
		if _, err := f.uc.Register(ctx, clientIP, username, password); err != nil {
			if errors.Is(err, domainErrors.ErrAlreadyExists) {
				continue
			}
			t.Fatalf("register %q: %v", username, err)
		}
		if _, err := f.uc.Login(ctx, clientIP, username, password); err != nil {
			t.Fatalf("login %q: %v", username, err)
		}
	}
}

func TestAuthUseCaseLoginUnknownUser(t *testing.T) {
	f := newAuthFixture()

	if _, err := f.uc.Login(context.Background(), clientIP, "ghost", "pw"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	ev, _ := f.audit.Last()
	if ev.Msg != "Failed login attempt for unknown user: ghost" {
		t.Fatalf("unexpected audit message %q", ev.Msg)
	}
	if f.tokens.Calls() != 0 {
		t.Fatalf("no session must be issued")
	}
}

func TestAuthUseCaseLoginBruteForce(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	if _, err := f.uc.Register(ctx, clientIP, "frank", "pw"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := 0; i < ratelimit.MaxLoginAttempts; i++ {
		if _, err := f.uc.Login(ctx, clientIP, "frank", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected invalid credentials, got %v", i+1, err)
		}
	}

	// Correct credentials are rejected once the limit is exceeded.
	if _, err := f.uc.Login(ctx, clientIP, "frank", "pw"); !errors.Is(err, domainErrors.ErrTooManyAttempts) {
		t.Fatalf("expected too many attempts, got %v", err)
	}
	ev, _ := f.audit.Last()
	if ev.Level != "CRITICAL" || ev.Msg != "Possible brute force attack detected from IP: "+clientIP {
		t.Fatalf("unexpected audit event %+v", ev)
	}

	if _, err := f.uc.Login(ctx, "198.51.100.1", "frank", "pw"); err != nil {
		t.Fatalf("other clients must not be affected: %v", err)
	}
}

func TestAuthUseCaseLoginCounterFailure(t *testing.T) {
	f := newAuthFixture()
	counter := &testhelpers.CounterStub{Err: testhelpers.ErrStub}
	f.uc.attempts = counter

	if _, err := f.uc.Login(context.Background(), clientIP, "x", "y"); !errors.Is(err, testhelpers.ErrStub) {
		t.Fatalf("expected counter error, got %v", err)
	}
	if len(counter.Keys) != 1 || counter.Keys[0] != clientIP {
		t.Fatalf("expected attempt keyed by ip, got %v", counter.Keys)
	}
}

func TestAuthUseCaseLoginStoreFailure(t *testing.T) {
	f := newAuthFixture()
	f.store.Err = testhelpers.ErrStub

	if _, err := f.uc.Login(context.Background(), clientIP, "x", "y"); !errors.Is(err, testhelpers.ErrStub) {
		t.Fatalf("expected store error, got %v", err)
	}
	if len(f.audit.Events()) != 0 {
		t.Fatalf("infrastructure failures are not security events")
	}
}

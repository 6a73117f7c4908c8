package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	testhelpers "github.com/polkiloo/gobank/internal/test"
)

type accountFixture struct {
	store    *testhelpers.BankStore
	audit    *testhelpers.AuditRecorder
	sessions *SessionUseCase
	uc       *AccountUseCase
	identity model.Identity
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	store := testhelpers.NewBankStore()
	audit := &testhelpers.AuditRecorder{}
	sessions := NewSessionUseCase(store.Sessions(), &testhelpers.SequenceTokens{}, 0)
	id := seedUser(t, store, "alice")
	return &accountFixture{
		store:    store,
		audit:    audit,
		sessions: sessions,
		uc:       NewAccountUseCase(store.Users(), store.Balances(), sessions, audit),
		identity: model.Identity{ID: id, Username: "alice"},
	}
}

func (f *accountFixture) manage(t *testing.T, action, amount string) (*model.Receipt, error) {
	t.Helper()
	return f.uc.Manage(context.Background(), clientIP, f.identity, action, amount)
}

func TestAccountUseCaseExampleFlow(t *testing.T) {
	f := newAccountFixture(t)

	receipt, err := f.manage(t, "deposit", "50")
	if err != nil || !receipt.Balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("deposit: got %v %v", receipt, err)
	}

	if _, err := f.manage(t, "withdraw", "100"); !errors.Is(err, domainErrors.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	ev, _ := f.audit.Last()
	if ev.Msg != "Insufficient funds withdrawal attempt: alice, amount: 100" || ev.IP != clientIP {
		t.Fatalf("unexpected audit event %+v", ev)
	}

	receipt, err = f.manage(t, "balance", "")
	if err != nil || receipt.Balance.String() != "50" {
		t.Fatalf("balance unchanged by failed withdraw expected, got %v %v", receipt, err)
	}

	receipt, err = f.manage(t, "withdraw", "50")
	if err != nil || !receipt.Balance.IsZero() {
		t.Fatalf("withdraw: got %v %v", receipt, err)
	}
	if receipt.Action != model.ActionWithdraw {
		t.Fatalf("unexpected action %q", receipt.Action)
	}
}

func TestAccountUseCaseFractionalAmounts(t *testing.T) {
	f := newAccountFixture(t)

	if _, err := f.manage(t, "deposit", "0.1"); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	receipt, err := f.manage(t, "deposit", "0.2")
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if receipt.Balance.String() != "0.3" {
		t.Fatalf("expected exact decimal arithmetic, got %s", receipt.Balance)
	}
}

func TestAccountUseCaseInvalidAmounts(t *testing.T) {
	f := newAccountFixture(t)

	for _, raw := range []string{"", "abc", "0", "-5", "1,5"} {
		if _, err := f.manage(t, "deposit", raw); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("deposit %q: expected invalid amount, got %v", raw, err)
		}
		ev, _ := f.audit.Last()
		if ev.Msg != "Invalid deposit amount: "+raw {
			t.Fatalf("unexpected audit message %q", ev.Msg)
		}
		if _, err := f.manage(t, "withdraw", raw); !errors.Is(err, domainErrors.ErrInvalidAmount) {
			t.Fatalf("withdraw %q: expected invalid amount, got %v", raw, err)
		}
		ev, _ = f.audit.Last()
		if ev.Msg != "Invalid withdrawal amount: "+raw {
			t.Fatalf("unexpected audit message %q", ev.Msg)
		}
	}

	if _, err := f.uc.Deposit(context.Background(), f.identity.ID, decimal.Zero); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected direct deposit of zero to fail, got %v", err)
	}
	if _, err := f.uc.Withdraw(context.Background(), f.identity.ID, decimal.NewFromInt(-1)); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected direct negative withdraw to fail, got %v", err)
	}
}

func TestAccountUseCaseInvalidAction(t *testing.T) {
	f := newAccountFixture(t)

	for _, action := range []string{"", "transfer", "DEPOSIT"} {
		if _, err := f.manage(t, action, "1"); !errors.Is(err, domainErrors.ErrInvalidAction) {
			t.Fatalf("action %q: expected invalid action, got %v", action, err)
		}
		ev, _ := f.audit.Last()
		if ev.Msg != "Invalid action attempted: "+action {
			t.Fatalf("unexpected audit message %q", ev.Msg)
		}
	}
}

func TestAccountUseCaseClose(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	token, err := f.sessions.Create(ctx, f.identity.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := f.sessions.Create(ctx, f.identity.ID); err != nil {
		t.Fatalf("create session: %v", err)
	}

	receipt, err := f.manage(t, "close", "")
	if err != nil {
		t.Fatalf("close returned error: %v", err)
	}
	if receipt.Action != model.ActionClose {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if _, ok := f.store.User("alice"); ok {
		t.Fatalf("user must be deleted")
	}
	if f.store.SessionCount() != 0 {
		t.Fatalf("all sessions must be deleted")
	}
	if _, err := f.sessions.Resolve(ctx, token); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("closed account session must not resolve, got %v", err)
	}
}

func TestAccountUseCaseActionsAfterConcurrentClose(t *testing.T) {
	f := newAccountFixture(t)
	if err := f.uc.Close(context.Background(), f.identity.ID); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, action := range []string{"deposit", "withdraw", "balance"} {
		if _, err := f.manage(t, action, "5"); !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", action, err)
		}
	}
	if events := f.audit.Events(); len(events) != 0 {
		t.Fatalf("closed account must not raise security events: %v", events)
	}
}

func TestAccountUseCaseRandomDepositsAddUp(t *testing.T) {
	f := newAccountFixture(t)

	total := decimal.Zero
	for i := 0; i < 20; i++ {
		amount := testhelpers.RandomAmount(1000)
		total = total.Add(amount)
		receipt, err := f.manage(t, "deposit", amount.String())
		if err != nil {
			t.Fatalf("deposit %s: %v", amount, err)
		}
		if !receipt.Balance.Equal(total) {
			t.Fatalf("expected balance %s, got %s", total, receipt.Balance)
		}
	}

	receipt, err := f.manage(t, "withdraw", total.String())
	if err != nil || !receipt.Balance.IsZero() {
		t.Fatalf("withdraw everything: got %v %v", receipt, err)
	}
}

func TestAccountUseCasePropagatesStoreErrors(t *testing.T) {
	f := newAccountFixture(t)
	f.store.Err = testhelpers.ErrStub

	for _, action := range []string{"deposit", "withdraw", "balance", "close"} {
		if _, err := f.manage(t, action, "1"); !errors.Is(err, testhelpers.ErrStub) {
			t.Fatalf("%s: expected store error, got %v", action, err)
		}
	}
	if len(f.audit.Events()) != 0 {
		t.Fatalf("store failures are not security events: %v", f.audit.Events())
	}
}

func TestAccountUseCaseConcurrentWithdrawNeverOverdraws(t *testing.T) {
	f := newAccountFixture(t)
	if _, err := f.manage(t, "deposit", "100"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	const workers = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Manage(context.Background(), clientIP, f.identity, "withdraw", "7")
			switch {
			case err == nil:
				mu.Lock()
				succeeded++
				mu.Unlock()
			case !errors.Is(err, domainErrors.ErrInsufficientFunds):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// 100 / 7 leaves room for exactly 14 withdrawals.
	if succeeded != 14 {
		t.Fatalf("expected 14 successful withdrawals, got %d", succeeded)
	}
	balance, err := f.uc.Balance(context.Background(), f.identity.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected remaining balance 2, got %s", balance)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]bool{
		"1":      true,
		" 2.50 ": true,
		"1e2":    true,
		"":       false,
		"0":      false,
		"-1":     false,
		"NaN":    false,
		"ten":    false,
		"1e32":   true,
		"1e-32":  true,
		"1e33":   false,
		"1e-33":  false,

		"1e20000000":                      false,
		"1e-20000":                        false,
		"1e2000000000":                    false,
		"0.00000000000000000000000000001": true,
		"1" + strings.Repeat("0", 200):    false,

		strings.Repeat("9", maxAmountLength):   true,
		strings.Repeat("9", maxAmountLength+1): false,
	}
	for raw, want := range cases {
		if _, ok := ParseAmount(raw); ok != want {
			t.Errorf("ParseAmount(%q) = %v, want %v", raw, ok, want)
		}
	}
}

func TestAccountUseCaseRejectsHugeAmount(t *testing.T) {
	f := newAccountFixture(t)

	if _, err := f.manage(t, "deposit", "1e20000000"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	ev, _ := f.audit.Last()
	if ev.Msg != "Invalid deposit amount: 1e20000000" {
		t.Fatalf("unexpected audit message %q", ev.Msg)
	}

	huge := decimal.New(1, 20000000)
	if _, err := f.uc.Deposit(context.Background(), f.identity.ID, huge); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := f.uc.Withdraw(context.Background(), f.identity.ID, decimal.New(1, -20000)); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

package finance

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/shopspring/decimal"
)

var (
	// InitialBalance is the balance of a brand new account.
	InitialBalance = decimal.NewFromInt(2000)
	// MinimumBalance is the lowest balance allowed after an expenditure or an investment.
	MinimumBalance = decimal.NewFromInt(1000)
)

// Account is a user session over a Ledger: it owns the running balance and
// enforces the minimum balance policy.
type Account struct {
	Username string
	Ledger   *Ledger
	Balance  decimal.Decimal
	Minimum  decimal.Decimal
	Fresh    bool // Fresh is true if no data existed for this account.

	storage Storage
}

// OpenAccount loads the ledger of username from st.
//
// The balance starts at initial and is adjusted by the loaded content. When
// st holds no data the account is fresh and empty. Any other read error is
// returned, so that existing data is never overwritten by mistake.
func OpenAccount(ctx context.Context, st Storage, username string, initial decimal.Decimal) (*Account, error) {
	if username == "" {
		username = DefaultUser
	}
	a := &Account{
		Username: username,
		Ledger:   NewLedger(),
		Balance:  initial,
		Minimum:  MinimumBalance,
		storage:  st,
	}
	err := a.Ledger.LoadFrom(ctx, st, &a.Balance)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.Fresh = true
		slog.Debug("open-account", "user", username, "fresh", true)
	case err != nil:
		return nil, fmt.Errorf("could not open account %q: %w", username, err)
	default:
		slog.Debug("open-account", "user", username, "balance", a.Balance)
	}
	return a, nil
}

// Save persists the ledger.
func (a *Account) Save(ctx context.Context) error {
	if err := a.Ledger.SaveTo(ctx, a.storage); err != nil {
		return fmt.Errorf("could not save account %q: %w", a.Username, err)
	}
	a.Fresh = false
	return nil
}

// RecordIncome adds an income and credits the balance.
func (a *Account) RecordIncome(on Date, amount decimal.Decimal, description string) (string, error) {
	id, err := a.Ledger.AddRecord(NewIncome(on, amount, description))
	if err != nil {
		return "", err
	}
	a.Balance = a.Balance.Add(amount)
	return id, nil
}

// RecordExpenditure adds an expenditure and debits the balance.
// It fails with ErrMinimumBalance if the balance would go below the minimum.
func (a *Account) RecordExpenditure(on Date, amount decimal.Decimal, description string, category Category) (string, error) {
	if err := a.check(amount); err != nil {
		return "", err
	}
	id, err := a.Ledger.AddRecord(NewExpenditure(on, amount, description, category))
	if err != nil {
		return "", err
	}
	a.Balance = a.Balance.Sub(amount)
	return id, nil
}

// Invest adds an investment and debits its principal.
// It fails with ErrMinimumBalance if the balance would go below the minimum.
func (a *Account) Invest(inv Investment) error {
	if inv == nil {
		return fmt.Errorf("%w: nil investment", ErrInvalidAmount)
	}
	if err := a.check(inv.Value()); err != nil {
		return err
	}
	if err := a.Ledger.AddInvestment(inv); err != nil {
		return err
	}
	a.Balance = a.Balance.Sub(inv.Value())
	return nil
}

// check verifies that debiting amount keeps the balance at or above the minimum.
func (a *Account) check(amount decimal.Decimal) error {
	if after := a.Balance.Sub(amount); after.LessThan(a.Minimum) {
		return fmt.Errorf("%w: balance %s minus %s is below %s", ErrMinimumBalance, a.Balance, amount, a.Minimum)
	}
	return nil
}

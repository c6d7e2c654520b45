// Package service applies the ledger's business rules on top of the account store.
package service

import (
	"errors"
	"fmt"
	"time"

	"account-ledger/ledger"
	"account-ledger/metrics"
	"account-ledger/model"
	"account-ledger/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrAccountNotFound   = storage.ErrNotFound
	ErrDuplicateAccount  = storage.ErrDuplicateAccount
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// Option configures an AccountService.
type Option func(*AccountService)

// WithClock replaces time.Now as the source of entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *AccountService) { s.now = now }
}

// WithLocation sets the zone whose calendar days GetStatementByDate compares.
func WithLocation(loc *time.Location) Option {
	return func(s *AccountService) { s.loc = loc }
}

// WithLogger sets the logger used for ledger mutations.
func WithLogger(logger *zap.Logger) Option {
	return func(s *AccountService) { s.logger = logger }
}

// AccountService orchestrates account lifecycle and statement operations.
type AccountService struct {
	store  storage.Store
	now    func() time.Time
	loc    *time.Location
	logger *zap.Logger
}

// NewAccountService creates a new AccountService over store.
func NewAccountService(store storage.Store, opts ...Option) *AccountService {
	s := &AccountService{
		store:  store,
		now:    time.Now,
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the zone used for calendar-date filtering.
func (s *AccountService) Location() *time.Location {
	return s.loc
}

func (s *AccountService) record(op string, err error) {
	switch {
	case err == nil:
		metrics.RecordOperation(op, metrics.ResultOK)
	case errors.Is(err, ErrAccountNotFound):
		metrics.RecordOperation(op, metrics.ResultNotFound)
	default:
		metrics.RecordOperation(op, metrics.ResultRejected)
	}
}

// CreateAccount opens an account with an empty statement.
func (s *AccountService) CreateAccount(taxID, name string) (acc *model.Account, err error) {
	defer func() { s.record("create", err) }()

	acc = &model.Account{
		ID:        uuid.NewString(),
		TaxID:     taxID,
		Name:      name,
		Statement: []model.Entry{},
	}
	if err := s.store.Insert(acc); err != nil {
		return nil, fmt.Errorf("create account %s: %w", taxID, err)
	}

	s.logger.Info("account created", zap.String("account_id", acc.ID))
	return acc, nil
}

// Exists reports whether taxID resolves to a live account.
func (s *AccountService) Exists(taxID string) bool {
	return s.store.Exists(taxID)
}

// Count returns the number of live accounts.
func (s *AccountService) Count() int {
	return s.store.Len()
}

// GetAccount returns a snapshot of the account.
func (s *AccountService) GetAccount(taxID string) (*model.Account, error) {
	acc, err := s.store.FindByTaxID(taxID)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acc, nil
}

// RenameAccount overwrites the account's display name. The name is not validated.
func (s *AccountService) RenameAccount(taxID, name string) (out *model.Account, err error) {
	defer func() { s.record("rename", err) }()

	err = s.store.Update(taxID, func(acc *model.Account) error {
		acc.Name = name
		out = acc.Clone()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rename account: %w", err)
	}

	s.logger.Info("account renamed", zap.String("account_id", out.ID))
	return out, nil
}

// Deposit appends a credit entry stamped with the current time.
func (s *AccountService) Deposit(taxID string, amount decimal.Decimal, description string) (entry model.Entry, err error) {
	defer func() { s.record("deposit", err) }()

	if !amount.IsPositive() {
		return model.Entry{}, ErrInvalidAmount
	}

	var accountID string
	err = s.store.Update(taxID, func(acc *model.Account) error {
		desc := description
		entry = model.Entry{
			Type:        model.Credit,
			Amount:      amount,
			Description: &desc,
			CreatedAt:   s.now(),
		}
		acc.Statement = append(acc.Statement, entry)
		accountID = acc.ID
		return nil
	})
	if err != nil {
		return model.Entry{}, fmt.Errorf("deposit: %w", err)
	}

	s.logger.Info("deposit recorded",
		zap.String("account_id", accountID),
		zap.String("amount", amount.String()))
	return entry, nil
}

// Withdraw appends a debit entry if the current balance covers amount.
// The balance check and the append happen under the account's lock, so two
// concurrent withdrawals can never both spend the same funds.
func (s *AccountService) Withdraw(taxID string, amount decimal.Decimal) (entry model.Entry, err error) {
	defer func() { s.record("withdraw", err) }()

	if !amount.IsPositive() {
		return model.Entry{}, ErrInvalidAmount
	}

	var (
		accountID string
		balance   decimal.Decimal
	)
	err = s.store.Update(taxID, func(acc *model.Account) error {
		accountID = acc.ID
		balance = ledger.Balance(acc.Statement)
		if amount.GreaterThan(balance) {
			return ErrInsufficientFunds
		}
		entry = model.Entry{
			Type:      model.Debit,
			Amount:    amount,
			CreatedAt: s.now(),
		}
		acc.Statement = append(acc.Statement, entry)
		return nil
	})
	if errors.Is(err, ErrInsufficientFunds) {
		s.logger.Warn("withdrawal rejected",
			zap.String("account_id", accountID),
			zap.String("amount", amount.String()),
			zap.String("balance", balance.String()))
	}
	if err != nil {
		return model.Entry{}, fmt.Errorf("withdraw: %w", err)
	}

	s.logger.Info("withdrawal recorded",
		zap.String("account_id", accountID),
		zap.String("amount", amount.String()))
	return entry, nil
}

// GetStatement returns every entry in creation order.
func (s *AccountService) GetStatement(taxID string) ([]model.Entry, error) {
	acc, err := s.store.FindByTaxID(taxID)
	if err != nil {
		return nil, fmt.Errorf("get statement: %w", err)
	}
	return acc.Statement, nil
}

// GetStatementByDate returns the entries created on the calendar day of date.
func (s *AccountService) GetStatementByDate(taxID string, date time.Time) ([]model.Entry, error) {
	acc, err := s.store.FindByTaxID(taxID)
	if err != nil {
		return nil, fmt.Errorf("get statement by date: %w", err)
	}
	return ledger.FilterByDate(acc.Statement, date, s.loc), nil
}

// GetBalance returns credits minus debits over the whole statement.
func (s *AccountService) GetBalance(taxID string) (balance decimal.Decimal, err error) {
	err = s.store.Update(taxID, func(acc *model.Account) error {
		balance = ledger.Balance(acc.Statement)
		return nil
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

// DeleteAccount removes the account and discards its statement.
func (s *AccountService) DeleteAccount(taxID string) (err error) {
	defer func() { s.record("delete", err) }()

	acc, err := s.store.FindByTaxID(taxID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if err := s.store.Remove(acc); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info("account deleted", zap.String("account_id", acc.ID))
	return nil
}

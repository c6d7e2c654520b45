// Package model defines the data structures used by the account ledger.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amounts are carried as decimal.Decimal rather than float64. A float64 cannot
// store most decimal values exactly (0.1 + 0.2 != 0.3), and a statement is
// summed on every balance request, so rounding error would accumulate.

// EntryType tells whether a statement entry adds to or subtracts from the balance.
type EntryType string

const (
	Credit EntryType = "credit"
	Debit  EntryType = "debit"
)

// Entry is one immutable credit or debit recorded on an account's statement.
// Description is only set for credits.
type Entry struct {
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Account is a customer account identified by its tax id.
type Account struct {
	ID        string  `json:"id"`
	TaxID     string  `json:"cpf"`
	Name      string  `json:"name"`
	Statement []Entry `json:"statement"`
}

// Clone returns a copy of the account that shares no memory with the original.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Statement = make([]Entry, len(a.Statement))
	copy(cp.Statement, a.Statement)
	for i, e := range cp.Statement {
		if e.Description != nil {
			d := *e.Description
			cp.Statement[i].Description = &d
		}
	}
	return &cp
}

// CreateAccountRequest defines the expected JSON body for creating an account.
// The tax id is read from "cpf"; "tax_id" is accepted as an alternative.
type CreateAccountRequest struct {
	CPF   string `json:"cpf"`
	TaxID string `json:"tax_id"`
	Name  string `json:"name"`
}

// Key returns the tax id the caller supplied.
func (r CreateAccountRequest) Key() string {
	if r.CPF != "" {
		return r.CPF
	}
	return r.TaxID
}

// UpdateAccountRequest defines the expected JSON body for renaming an account.
type UpdateAccountRequest struct {
	Name string `json:"name"`
}

// DepositRequest defines the expected JSON body for a deposit.
type DepositRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// WithdrawRequest defines the expected JSON body for a withdrawal.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse is returned by the balance endpoint.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

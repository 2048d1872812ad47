package models

import (
	"github.com/shopspring/decimal"
)

// Transaction is a single spending line after ingest. Values are treated as
// immutable; use WithCategory to obtain a categorized copy.
type Transaction struct {
	// Date is the ISO calendar date, YYYY-MM-DD.
	Date string `json:"date" yaml:"date" csv:"Date"`
	// Description is the raw merchant text as exported by the bank.
	Description string `json:"description" yaml:"description" csv:"Description"`
	// Amount is the positive magnitude of the debit or credit.
	Amount   decimal.Decimal `json:"amount" yaml:"amount" csv:"Amount"`
	Category Category        `json:"category" yaml:"category" csv:"Category"`
}

// TransactionKey identifies a transaction for deduplication.
type TransactionKey struct {
	Date        string
	Description string
	Amount      string
}

// NewTransaction builds an uncategorized transaction, storing the magnitude
// of amount.
func NewTransaction(date, description string, amount decimal.Decimal) Transaction {
	return Transaction{Date: date, Description: description, Amount: amount.Abs()}
}

// Key returns the dedup identity. Amounts compare by value, so 12.5 and
// 12.50 produce the same key.
func (t Transaction) Key() TransactionKey {
	return TransactionKey{
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount.String(),
	}
}

// Month returns the YYYY-MM prefix of Date, or "" when Date is too short.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// WithCategory returns a copy of t with the category set.
func (t Transaction) WithCategory(c Category) Transaction {
	t.Category = c
	return t
}

// IsCategorized reports whether a valid category has been assigned.
func (t Transaction) IsCategorized() bool {
	return t.Category.IsValid()
}

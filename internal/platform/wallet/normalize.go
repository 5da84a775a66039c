package wallet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// displayDateLayout is the human-readable rendering of a transaction timestamp
const displayDateLayout = "Jan 2, 2006 15:04"

// defaultTitle is used when the backend omits the transaction label
const defaultTitle = "Transaction"

// MalformedTransactionError names a raw record that failed to parse. Callers
// decide whether to skip the record or abort; normalization never silently
// coerces a bad field.
type MalformedTransactionError struct {
	ID    string
	Field string
	Err   error
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("transaction %q: malformed %s: %v", e.ID, e.Field, e.Err)
}

func (e *MalformedTransactionError) Unwrap() error {
	return e.Err
}

// Normalize converts a raw ledger record into its display form. It is pure
// and idempotent: the same raw fields always produce identical output.
func Normalize(raw RawTransaction) (NormalizedTransaction, error) {
	amount, err := decimal.NewFromString(raw.Amount)
	if err != nil {
		return NormalizedTransaction{}, &MalformedTransactionError{ID: raw.ID, Field: "amount", Err: err}
	}

	createdAt, err := time.Parse(time.RFC3339, raw.CreatedAt)
	if err != nil {
		return NormalizedTransaction{}, &MalformedTransactionError{ID: raw.ID, Field: "createdAt", Err: err}
	}

	isCredit := derivePolarity(raw.Type, amount)

	// Always sign the magnitude, never the raw value: prefixing the signed
	// value would render "+-5" for tagged credits with negative amounts.
	sign := "-"
	if isCredit {
		sign = "+"
	}

	title := raw.Title
	if title == "" {
		title = defaultTitle
	}

	return NormalizedTransaction{
		ID:              raw.ID,
		Title:           title,
		Type:            raw.Type,
		Amount:          amount,
		CreatedAt:       createdAt,
		Source:          raw.Source,
		IsCredit:        isCredit,
		FormattedAmount: sign + amount.Abs().String(),
		FormattedDate:   createdAt.UTC().Format(displayDateLayout),
		Category:        CategoryFor(raw.Source),
	}, nil
}

// derivePolarity resolves the transaction direction. An explicit credit or
// debit tag is authoritative regardless of the amount's sign; without one the
// sign decides, and a zero amount counts as a debit.
func derivePolarity(tag string, amount decimal.Decimal) bool {
	switch tag {
	case TypeCredit:
		return true
	case TypeDebit:
		return false
	}
	return amount.Sign() > 0
}

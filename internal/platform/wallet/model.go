package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type tags as reported by the hub backend
const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Source describes why a transaction occurred
type Source struct {
	Kind string `json:"kind"`
}

// RawTransaction is a single ledger record as returned by the hub wallet API.
// The shape is untrusted: the type tag and source are optional, the amount
// arrives as a decimal string and may carry either sign.
type RawTransaction struct {
	ID        string  `json:"id"`
	Amount    string  `json:"amount"`
	Type      string  `json:"type,omitempty"`
	CreatedAt string  `json:"createdAt"`
	Title     string  `json:"title,omitempty"`
	Source    *Source `json:"source,omitempty"`
}

// NormalizedTransaction is a display-ready ledger record. It is immutable
// once produced; re-normalizing the same raw fields yields identical output.
type NormalizedTransaction struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Type            string          `json:"type,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
	Source          *Source         `json:"source,omitempty"`
	IsCredit        bool            `json:"is_credit"`
	FormattedAmount string          `json:"formatted_amount"`
	FormattedDate   string          `json:"formatted_date"`
	Category        Category        `json:"category"`
}

// RemoteWallet is the raw wallet state fetched from the hub backend
type RemoteWallet struct {
	Balance      decimal.Decimal
	Transactions []RawTransaction
}

// Statistics are derived from a normalized transaction list on demand,
// never persisted or incrementally patched.
type Statistics struct {
	TotalTransactions int                     `json:"total_transactions"`
	TotalCredits      int                     `json:"total_credits"`
	TotalDebits       int                     `json:"total_debits"`
	TotalCreditAmount decimal.Decimal         `json:"total_credit_amount"`
	TotalDebitAmount  decimal.Decimal         `json:"total_debit_amount"`
	RecentActivity    []NormalizedTransaction `json:"recent_activity"`
}

// View is a complete display-ready wallet snapshot. The balance is taken
// verbatim from the backend, never recomputed from the transaction list.
// Transactions keep the backend's order (assumed reverse-chronological).
type View struct {
	Balance      decimal.Decimal         `json:"balance"`
	Transactions []NormalizedTransaction `json:"transactions"`
	Statistics   Statistics              `json:"statistics"`
	FetchedAt    time.Time               `json:"fetched_at"`
}

// PurchaseRequest is a write operation forwarded to the hub wallet API.
// The idempotency key makes retried submissions safe to replay server-side.
type PurchaseRequest struct {
	Amount         decimal.Decimal   `json:"amount"`
	Title          string            `json:"title"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	IdempotencyKey string            `json:"idempotency_key"`
}

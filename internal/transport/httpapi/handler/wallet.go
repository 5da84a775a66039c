package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlashaul/portal/internal/platform/wallet"
	"github.com/atlashaul/portal/internal/transport/httpapi/middleware"
)

// WalletServiceInterface defines the interface for wallet view operations
type WalletServiceInterface interface {
	Fetch(ctx context.Context, memberID uuid.UUID) (*wallet.View, error)
	SubmitPurchase(ctx context.Context, memberID uuid.UUID, amount decimal.Decimal, title string, metadata map[string]string) (*wallet.View, error)
}

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	walletService WalletServiceInterface
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService WalletServiceInterface) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// CategoryResponse is the display category of a transaction
type CategoryResponse struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// TransactionResponse represents a display-ready transaction
type TransactionResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Amount          string           `json:"amount"`
	IsCredit        bool             `json:"is_credit"`
	FormattedAmount string           `json:"formatted_amount"`
	FormattedDate   string           `json:"formatted_date"`
	CreatedAt       string           `json:"created_at"`
	Category        CategoryResponse `json:"category"`
}

// StatisticsResponse represents aggregate wallet statistics
type StatisticsResponse struct {
	TotalTransactions int                   `json:"total_transactions"`
	TotalCredits      int                   `json:"total_credits"`
	TotalDebits       int                   `json:"total_debits"`
	TotalCreditAmount string                `json:"total_credit_amount"`
	TotalDebitAmount  string                `json:"total_debit_amount"`
	RecentActivity    []TransactionResponse `json:"recent_activity"`
}

// WalletViewResponse represents the full wallet view
type WalletViewResponse struct {
	Balance      string                `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
	Statistics   StatisticsResponse    `json:"statistics"`
	FetchedAt    string                `json:"fetched_at"`
}

// PurchaseRequest represents the purchase submission request
type PurchaseRequest struct {
	Amount   string            `json:"amount"`
	Title    string            `json:"title"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// GetWallet handles GET /wallet
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	view, err := h.walletService.Fetch(r.Context(), memberID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toWalletViewResponse(view))
}

// SubmitPurchase handles POST /wallet/purchases
func (h *WalletHandler) SubmitPurchase(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.GetMemberIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid purchase amount")
		return
	}

	view, err := h.walletService.SubmitPurchase(r.Context(), memberID, amount, req.Title, req.Metadata)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAmount) {
			respondWithError(w, http.StatusBadRequest, "purchase amount must be positive")
			return
		}
		if errors.Is(err, wallet.ErrMissingTitle) {
			respondWithError(w, http.StatusBadRequest, "purchase title is required")
			return
		}
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toWalletViewResponse(view))
}

// Helper functions to convert domain types to responses

func toTransactionResponse(tx wallet.NormalizedTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		Title:           tx.Title,
		Amount:          tx.Amount.String(),
		IsCredit:        tx.IsCredit,
		FormattedAmount: tx.FormattedAmount,
		FormattedDate:   tx.FormattedDate,
		CreatedAt:       tx.CreatedAt.UTC().Format(time.RFC3339),
		Category: CategoryResponse{
			Label: tx.Category.Label,
			Color: tx.Category.Color,
		},
	}
}

func toTransactionResponses(txs []wallet.NormalizedTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return out
}

func toWalletViewResponse(view *wallet.View) WalletViewResponse {
	return WalletViewResponse{
		Balance:      view.Balance.String(),
		Transactions: toTransactionResponses(view.Transactions),
		Statistics: StatisticsResponse{
			TotalTransactions: view.Statistics.TotalTransactions,
			TotalCredits:      view.Statistics.TotalCredits,
			TotalDebits:       view.Statistics.TotalDebits,
			TotalCreditAmount: view.Statistics.TotalCreditAmount.String(),
			TotalDebitAmount:  view.Statistics.TotalDebitAmount.String(),
			RecentActivity:    toTransactionResponses(view.Statistics.RecentActivity),
		},
		FetchedAt: view.FetchedAt.UTC().Format(time.RFC3339),
	}
}

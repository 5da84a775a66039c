package hub

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlashaul/portal/internal/platform/events"
	"github.com/atlashaul/portal/internal/platform/invite"
	"github.com/atlashaul/portal/internal/platform/wallet"
	apperrors "github.com/atlashaul/portal/internal/shared/errors"
)

// Adapter converts hub wire payloads into platform domain types
type Adapter struct {
	client *Client
}

// Compile-time checks that Adapter satisfies the platform contracts
var (
	_ wallet.Gateway  = (*Adapter)(nil)
	_ events.Provider = (*Adapter)(nil)
	_ invite.Forwarder = (*Adapter)(nil)
)

// NewAdapter creates a new hub adapter
func NewAdapter(client *Client) *Adapter {
	return &Adapter{client: client}
}

// FetchWallet fetches and converts a member's wallet. The balance is passed
// through untouched; transaction field parsing is deferred to the normalizer
// so that one bad record surfaces individually instead of failing the fetch.
func (a *Adapter) FetchWallet(ctx context.Context, memberID uuid.UUID) (*wallet.RemoteWallet, error) {
	payload, err := a.client.GetWallet(ctx, memberID)
	if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(payload.Balance.String())
	if err != nil {
		return nil, apperrors.MalformedRecord("wallet balance is not a number", err)
	}

	txs := make([]wallet.RawTransaction, 0, len(payload.Transactions))
	for _, tp := range payload.Transactions {
		txs = append(txs, convertTransaction(tp))
	}

	return &wallet.RemoteWallet{
		Balance:      balance,
		Transactions: txs,
	}, nil
}

// SubmitPurchase forwards a purchase request to the hub
func (a *Adapter) SubmitPurchase(ctx context.Context, memberID uuid.UUID, req wallet.PurchaseRequest) error {
	return a.client.SubmitPurchase(ctx, memberID, purchaseBody{
		Amount:         req.Amount.String(),
		Title:          req.Title,
		Metadata:       req.Metadata,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// ListEvents fetches and converts published events. Events with unparseable
// timestamps are skipped individually.
func (a *Adapter) ListEvents(ctx context.Context) ([]events.Event, error) {
	payloads, err := a.client.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]events.Event, 0, len(payloads))
	for _, ep := range payloads {
		ev, err := convertEvent(ep)
		if err != nil {
			continue // skip individual conversion failures
		}
		result = append(result, ev)
	}

	return result, nil
}

// SubmitInvite forwards an invitation application to the hub
func (a *Adapter) SubmitInvite(ctx context.Context, sub invite.Submission) error {
	return a.client.SubmitInvite(ctx, inviteBody{
		Name:            sub.Name,
		Email:           sub.Email,
		Age:             sub.Age,
		ExperienceHours: sub.ExperienceHours,
		Discord:         sub.Discord,
		Motivation:      sub.Motivation,
	})
}

// convertTransaction maps a wire transaction to the untrusted raw domain shape
func convertTransaction(tp TransactionPayload) wallet.RawTransaction {
	raw := wallet.RawTransaction{
		ID:        tp.ID,
		Amount:    tp.Amount.String(),
		Type:      tp.Type,
		CreatedAt: tp.CreatedAt,
		Title:     tp.Title,
	}
	if tp.Source != nil {
		raw.Source = &wallet.Source{Kind: tp.Source.Kind}
	}
	return raw
}

// convertEvent maps a wire event to the domain type
func convertEvent(ep EventPayload) (events.Event, error) {
	startsAt, err := time.Parse(time.RFC3339, ep.StartsAt)
	if err != nil {
		return events.Event{}, fmt.Errorf("invalid startsAt: %w", err)
	}
	endsAt, err := time.Parse(time.RFC3339, ep.EndsAt)
	if err != nil {
		return events.Event{}, fmt.Errorf("invalid endsAt: %w", err)
	}

	return events.Event{
		ID:          ep.ID,
		Title:       ep.Title,
		Status:      events.Status(ep.Status),
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Departure:   ep.Departure,
		Destination: ep.Destination,
		Server:      ep.Server,
	}, nil
}

package wallet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlashaul/portal/pkg/logger"
)

// Gateway is the remote wallet backend. It owns transport concerns
// (retry, backoff); this service never retries on its own.
type Gateway interface {
	FetchWallet(ctx context.Context, memberID uuid.UUID) (*RemoteWallet, error)
	SubmitPurchase(ctx context.Context, memberID uuid.UUID, req PurchaseRequest) error
}

// slot holds the most recent committed view for one member
type slot struct {
	seq  uint64
	view *View
}

// Service builds display-ready wallet views from the remote backend.
// Overlapping fetches for the same member resolve last-fetch-wins: a stale
// response completing after a newer one never overwrites it.
type Service struct {
	gateway Gateway
	log     *logger.Logger

	mu     sync.Mutex
	seq    uint64
	latest map[uuid.UUID]*slot
}

// NewService creates a wallet view service
func NewService(gateway Gateway, log *logger.Logger) *Service {
	return &Service{
		gateway: gateway,
		log:     log.WithField("component", "wallet"),
		latest:  make(map[uuid.UUID]*slot),
	}
}

// Fetch retrieves the member's wallet from the backend and returns a fresh
// display view. Each fetch replaces the previous snapshot wholesale; there
// are no partial merges. Malformed records are skipped with a warning, a
// wrong date on screen is worse than an omitted row.
func (s *Service) Fetch(ctx context.Context, memberID uuid.UUID) (*View, error) {
	seq := s.begin()

	remote, err := s.gateway.FetchWallet(ctx, memberID)
	if err != nil {
		return nil, err
	}

	view := s.buildView(ctx, remote)
	return s.commit(memberID, seq, view), nil
}

// SubmitPurchase validates and forwards a purchase to the backend, then
// refetches the wallet (fire-and-refresh). A unique idempotency key is
// generated per submission so transport-level retries are not double-applied
// server-side. Backend failures surface unmodified; no local reconciliation.
func (s *Service) SubmitPurchase(ctx context.Context, memberID uuid.UUID, amount decimal.Decimal, title string, metadata map[string]string) (*View, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if title == "" {
		return nil, ErrMissingTitle
	}

	req := PurchaseRequest{
		Amount:         amount,
		Title:          title,
		Metadata:       metadata,
		IdempotencyKey: uuid.NewString(),
	}

	if err := s.gateway.SubmitPurchase(ctx, memberID, req); err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("purchase submitted",
		"member_id", memberID,
		"amount", amount.String(),
		"idempotency_key", req.IdempotencyKey,
	)

	return s.Fetch(ctx, memberID)
}

// buildView normalizes and aggregates a raw remote wallet
func (s *Service) buildView(ctx context.Context, remote *RemoteWallet) *View {
	normalized := make([]NormalizedTransaction, 0, len(remote.Transactions))
	for _, raw := range remote.Transactions {
		tx, err := Normalize(raw)
		if err != nil {
			var malformed *MalformedTransactionError
			if errors.As(err, &malformed) {
				s.log.WithContext(ctx).Warn("skipping malformed transaction",
					"transaction_id", malformed.ID,
					"field", malformed.Field,
					"error", malformed.Err.Error(),
				)
				continue
			}
			s.log.WithContext(ctx).Warn("skipping transaction", "error", err.Error())
			continue
		}
		normalized = append(normalized, tx)
	}

	return &View{
		Balance:      remote.Balance,
		Transactions: normalized,
		Statistics:   Aggregate(normalized),
		FetchedAt:    time.Now().UTC(),
	}
}

// begin reserves a sequence number for a fetch
func (s *Service) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// commit stores the view unless a newer fetch already committed for this
// member, in which case the newer view is returned and the stale one dropped.
func (s *Service) commit(memberID uuid.UUID, seq uint64, view *View) *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.latest[memberID]; ok && cur.seq > seq {
		return cur.view
	}
	s.latest[memberID] = &slot{seq: seq, view: view}
	return view
}

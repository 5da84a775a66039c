package wallet_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atlashaul/portal/internal/platform/wallet"
	"github.com/atlashaul/portal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New("development", io.Discard)
}

// MockGateway is a mock implementation of wallet.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchWallet(ctx context.Context, memberID uuid.UUID) (*wallet.RemoteWallet, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.RemoteWallet), args.Error(1)
}

func (m *MockGateway) SubmitPurchase(ctx context.Context, memberID uuid.UUID, req wallet.PurchaseRequest) error {
	args := m.Called(ctx, memberID, req)
	return args.Error(0)
}

func TestService_Fetch(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()

	remote := &wallet.RemoteWallet{
		Balance: decimal.RequireFromString("1250.75"),
		Transactions: []wallet.RawTransaction{
			{ID: "a", Amount: "500", Type: wallet.TypeCredit, CreatedAt: "2024-02-02T10:00:00Z"},
			{ID: "b", Amount: "-120", CreatedAt: "2024-02-01T10:00:00Z"},
		},
	}

	gw := new(MockGateway)
	gw.On("FetchWallet", ctx, memberID).Return(remote, nil)

	svc := wallet.NewService(gw, testLogger())
	view, err := svc.Fetch(ctx, memberID)
	require.NoError(t, err)

	// Balance comes verbatim from the backend, never derived from the list
	assert.Equal(t, "1250.75", view.Balance.String())
	require.Len(t, view.Transactions, 2)
	assert.Equal(t, "a", view.Transactions[0].ID, "backend order preserved")
	assert.Equal(t, 2, view.Statistics.TotalTransactions)
	assert.Equal(t, 1, view.Statistics.TotalCredits)
	assert.Equal(t, 1, view.Statistics.TotalDebits)
	assert.False(t, view.FetchedAt.IsZero())
	gw.AssertExpectations(t)
}

func TestService_Fetch_SkipsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()

	remote := &wallet.RemoteWallet{
		Balance: decimal.NewFromInt(10),
		Transactions: []wallet.RawTransaction{
			{ID: "ok", Amount: "5", CreatedAt: "2024-02-02T10:00:00Z"},
			{ID: "bad-date", Amount: "5", CreatedAt: "not-a-date"},
			{ID: "bad-amount", Amount: "??", CreatedAt: "2024-02-01T10:00:00Z"},
		},
	}

	gw := new(MockGateway)
	gw.On("FetchWallet", ctx, memberID).Return(remote, nil)

	svc := wallet.NewService(gw, testLogger())
	view, err := svc.Fetch(ctx, memberID)
	require.NoError(t, err)

	require.Len(t, view.Transactions, 1)
	assert.Equal(t, "ok", view.Transactions[0].ID)
	assert.Equal(t, 1, view.Statistics.TotalTransactions)
}

func TestService_Fetch_GatewayError(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()

	gw := new(MockGateway)
	gw.On("FetchWallet", ctx, memberID).Return(nil, errors.New("wallet service timeout"))

	svc := wallet.NewService(gw, testLogger())
	_, err := svc.Fetch(ctx, memberID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet service timeout")
}

func TestService_SubmitPurchase(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()

	remote := &wallet.RemoteWallet{Balance: decimal.NewFromInt(900)}

	var keys []string
	gw := new(MockGateway)
	gw.On("SubmitPurchase", ctx, memberID, mock.AnythingOfType("wallet.PurchaseRequest")).
		Run(func(args mock.Arguments) {
			req := args.Get(2).(wallet.PurchaseRequest)
			keys = append(keys, req.IdempotencyKey)
		}).
		Return(nil)
	gw.On("FetchWallet", ctx, memberID).Return(remote, nil)

	svc := wallet.NewService(gw, testLogger())

	view, err := svc.SubmitPurchase(ctx, memberID, decimal.NewFromInt(100), "Custom paint", nil)
	require.NoError(t, err)
	assert.Equal(t, "900", view.Balance.String(), "submission triggers a fresh fetch")

	_, err = svc.SubmitPurchase(ctx, memberID, decimal.NewFromInt(100), "Custom paint", nil)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1], "each submission gets its own idempotency key")
	gw.AssertNumberOfCalls(t, "FetchWallet", 2)
}

func TestService_SubmitPurchase_Validation(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()
	gw := new(MockGateway)
	svc := wallet.NewService(gw, testLogger())

	_, err := svc.SubmitPurchase(ctx, memberID, decimal.Zero, "Custom paint", nil)
	assert.ErrorIs(t, err, wallet.ErrInvalidAmount)

	_, err = svc.SubmitPurchase(ctx, memberID, decimal.NewFromInt(-5), "Custom paint", nil)
	assert.ErrorIs(t, err, wallet.ErrInvalidAmount)

	_, err = svc.SubmitPurchase(ctx, memberID, decimal.NewFromInt(5), "", nil)
	assert.ErrorIs(t, err, wallet.ErrMissingTitle)

	gw.AssertNotCalled(t, "SubmitPurchase")
}

// stubGateway lets a test control when each fetch completes
type stubGateway struct {
	fetch func(ctx context.Context, memberID uuid.UUID) (*wallet.RemoteWallet, error)
}

func (s *stubGateway) FetchWallet(ctx context.Context, memberID uuid.UUID) (*wallet.RemoteWallet, error) {
	return s.fetch(ctx, memberID)
}

func (s *stubGateway) SubmitPurchase(ctx context.Context, memberID uuid.UUID, req wallet.PurchaseRequest) error {
	return nil
}

// A fetch that started first but resolved last must not clobber the newer
// snapshot: both callers end up with the view of the most recent fetch.
func TestService_Fetch_LastFetchWins(t *testing.T) {
	ctx := context.Background()
	memberID := uuid.New()

	staleStarted := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	gw := &stubGateway{
		fetch: func(ctx context.Context, id uuid.UUID) (*wallet.RemoteWallet, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(staleStarted)
				<-release
				return &wallet.RemoteWallet{Balance: decimal.NewFromInt(1)}, nil
			}
			return &wallet.RemoteWallet{Balance: decimal.NewFromInt(2)}, nil
		},
	}

	svc := wallet.NewService(gw, testLogger())

	var wg sync.WaitGroup
	var staleView *wallet.View
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleView, _ = svc.Fetch(ctx, memberID)
	}()

	<-staleStarted
	freshView, err := svc.Fetch(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "2", freshView.Balance.String())

	close(release)
	wg.Wait()

	require.NotNil(t, staleView)
	assert.Equal(t, "2", staleView.Balance.String(), "stale response is dropped in favor of the newer snapshot")
}

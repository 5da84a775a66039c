package hub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlashaul/portal/internal/infra/gateway/hub"
	"github.com/atlashaul/portal/internal/platform/events"
	"github.com/atlashaul/portal/internal/platform/wallet"
	apperrors "github.com/atlashaul/portal/internal/shared/errors"
)

func purchaseRequestFixture(key string) wallet.PurchaseRequest {
	return wallet.PurchaseRequest{
		Amount:         decimal.NewFromInt(150),
		Title:          "Garage slot",
		IdempotencyKey: key,
	}
}

func adapterForBody(t *testing.T, body string) (*hub.Adapter, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	return hub.NewAdapter(hub.NewClient(server.URL, "key", testLogger())), server.Close
}

func TestAdapter_FetchWallet(t *testing.T) {
	adapter, cleanup := adapterForBody(t, `{
		"balance": "980.5",
		"transactions": [
			{"id": "tx-1", "amount": 500, "type": "credit", "createdAt": "2024-02-02T10:00:00Z", "title": "Convoy reward", "source": {"kind": "job"}},
			{"id": "tx-2", "amount": -120, "createdAt": "2024-02-01T10:00:00Z"}
		]
	}`)
	defer cleanup()

	remote, err := adapter.FetchWallet(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "980.5", remote.Balance.String())
	require.Len(t, remote.Transactions, 2)

	assert.Equal(t, wallet.RawTransaction{
		ID:        "tx-1",
		Amount:    "500",
		Type:      "credit",
		CreatedAt: "2024-02-02T10:00:00Z",
		Title:     "Convoy reward",
		Source:    &wallet.Source{Kind: "job"},
	}, remote.Transactions[0])
	assert.Nil(t, remote.Transactions[1].Source)
}

func TestAdapter_FetchWallet_MalformedBalance(t *testing.T) {
	adapter, cleanup := adapterForBody(t, `{"balance": "", "transactions": []}`)
	defer cleanup()

	_, err := adapter.FetchWallet(context.Background(), uuid.New())
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrCodeMalformedRecord, appErr.Code)
}

func TestAdapter_ListEvents_SkipsBadTimestamps(t *testing.T) {
	adapter, cleanup := adapterForBody(t, `{"links": {"next": ""}, "data": [
		{"id": "good", "title": "Baltic Loop", "status": "approved", "startsAt": "2024-06-01T18:00:00Z", "endsAt": "2024-06-01T20:00:00Z", "server": "Simulation 1"},
		{"id": "bad", "title": "Broken", "status": "approved", "startsAt": "soon", "endsAt": "2024-06-01T20:00:00Z"}
	]}`)
	defer cleanup()

	got, err := adapter.ListEvents(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "good", got[0].ID)
	assert.Equal(t, events.StatusApproved, got[0].Status)
	assert.Equal(t, "Simulation 1", got[0].Server)
}

package wallet_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlashaul/portal/internal/platform/wallet"
)

func creditTx(id string, amount string) wallet.NormalizedTransaction {
	d, _ := decimal.NewFromString(amount)
	return wallet.NormalizedTransaction{ID: id, Amount: d, IsCredit: true}
}

func debitTx(id string, amount string) wallet.NormalizedTransaction {
	d, _ := decimal.NewFromString(amount)
	return wallet.NormalizedTransaction{ID: id, Amount: d, IsCredit: false}
}

func TestAggregate_EmptyList(t *testing.T) {
	stats := wallet.Aggregate(nil)

	assert.Equal(t, 0, stats.TotalTransactions)
	assert.Equal(t, 0, stats.TotalCredits)
	assert.Equal(t, 0, stats.TotalDebits)
	assert.True(t, stats.TotalCreditAmount.IsZero())
	assert.True(t, stats.TotalDebitAmount.IsZero())
	assert.Empty(t, stats.RecentActivity)
}

func TestAggregate_CountsAndSums(t *testing.T) {
	txs := []wallet.NormalizedTransaction{
		creditTx("a", "100"),
		debitTx("b", "-40"),
		creditTx("c", "2.5"),
		debitTx("d", "0"),
	}

	stats := wallet.Aggregate(txs)

	assert.Equal(t, 4, stats.TotalTransactions)
	assert.Equal(t, 2, stats.TotalCredits)
	assert.Equal(t, 2, stats.TotalDebits)
	assert.Equal(t, stats.TotalTransactions, stats.TotalCredits+stats.TotalDebits)

	// Sums are magnitudes, so the debit recorded as -40 contributes 40
	assert.Equal(t, "102.5", stats.TotalCreditAmount.String())
	assert.Equal(t, "40", stats.TotalDebitAmount.String())
	assert.False(t, stats.TotalCreditAmount.IsNegative())
	assert.False(t, stats.TotalDebitAmount.IsNegative())
}

func TestAggregate_RecentActivity(t *testing.T) {
	for _, size := range []int{0, 1, 4, 5, 6, 12} {
		t.Run(fmt.Sprintf("list of %d", size), func(t *testing.T) {
			txs := make([]wallet.NormalizedTransaction, size)
			for i := range txs {
				txs[i] = creditTx(fmt.Sprintf("tx-%d", i), "1")
			}

			stats := wallet.Aggregate(txs)

			want := size
			if want > 5 {
				want = 5
			}
			require.Len(t, stats.RecentActivity, want)

			// Input order preserved, no re-sort
			for i, tx := range stats.RecentActivity {
				assert.Equal(t, fmt.Sprintf("tx-%d", i), tx.ID)
			}
		})
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	txs := []wallet.NormalizedTransaction{
		creditTx("a", "100"),
		debitTx("b", "-40"),
	}
	before := make([]wallet.NormalizedTransaction, len(txs))
	copy(before, txs)

	_ = wallet.Aggregate(txs)

	assert.Equal(t, before, txs)
}

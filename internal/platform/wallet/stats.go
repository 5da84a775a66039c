package wallet

import "github.com/shopspring/decimal"

// recentActivityLimit caps the recent activity slice
const recentActivityLimit = 5

// Aggregate folds a normalized transaction list into display statistics.
// It never mutates its input; an empty list yields all-zero statistics.
// RecentActivity keeps the list's existing order rather than re-sorting,
// the backend is trusted to return reverse-chronological order.
func Aggregate(txs []NormalizedTransaction) Statistics {
	stats := Statistics{
		TotalCreditAmount: decimal.Zero,
		TotalDebitAmount:  decimal.Zero,
	}

	for _, tx := range txs {
		stats.TotalTransactions++
		if tx.IsCredit {
			stats.TotalCredits++
			stats.TotalCreditAmount = stats.TotalCreditAmount.Add(tx.Amount.Abs())
		} else {
			stats.TotalDebits++
			stats.TotalDebitAmount = stats.TotalDebitAmount.Add(tx.Amount.Abs())
		}
	}

	n := recentActivityLimit
	if len(txs) < n {
		n = len(txs)
	}
	stats.RecentActivity = make([]NormalizedTransaction, n)
	copy(stats.RecentActivity, txs[:n])

	return stats
}

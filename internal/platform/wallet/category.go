package wallet

// Recognized source kinds reported by the hub backend
const (
	KindAdminDeduction = "admin_deduction"
	KindJob            = "job"
	KindAdjustment     = "adjustment"
	KindPurchase       = "purchase"
)

// Category is the display classification of a transaction source
type Category struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// categories maps source kinds to display categories. The table is keyed on
// the kind alone: an admin deduction stays error-colored even when the
// backend reports it with a positive amount.
var categories = map[string]Category{
	KindAdminDeduction: {Label: "Admin Deduction", Color: "error"},
	KindJob:            {Label: "Job Reward", Color: "success"},
	KindAdjustment:     {Label: "Adjustment", Color: "info"},
	KindPurchase:       {Label: "Purchase", Color: "warning"},
}

// defaultCategory is used for missing and unrecognized source kinds
var defaultCategory = Category{Label: "Transaction", Color: "default"}

// CategoryFor returns the display category for a transaction source
func CategoryFor(src *Source) Category {
	if src == nil {
		return defaultCategory
	}
	if c, ok := categories[src.Kind]; ok {
		return c
	}
	return defaultCategory
}

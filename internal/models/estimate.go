package models

// CategoryEstimate is the AI-estimated cost for a single category.
type CategoryEstimate struct {
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// BudgetEstimate is the structured result of one AI cost estimation call,
// stored verbatim on the trip until replaced by the next call.
type BudgetEstimate struct {
	Accommodation *CategoryEstimate `json:"accommodation,omitempty"`
	Food          *CategoryEstimate `json:"food,omitempty"`
	Transport     *CategoryEstimate `json:"transport,omitempty"`
	Activities    *CategoryEstimate `json:"activities,omitempty"`
	Shopping      *CategoryEstimate `json:"shopping,omitempty"`
	Other         *CategoryEstimate `json:"other,omitempty"`
	Total         float64           `json:"total,omitempty"`
	Currency      string            `json:"currency,omitempty"`
	Summary       string            `json:"summary,omitempty"`
}

// Category returns the estimate for one category, nil if absent.
func (e *BudgetEstimate) Category(c ExpenseCategory) *CategoryEstimate {
	if e == nil {
		return nil
	}
	switch c {
	case CategoryAccommodation:
		return e.Accommodation
	case CategoryFood:
		return e.Food
	case CategoryTransport:
		return e.Transport
	case CategoryActivities:
		return e.Activities
	case CategoryShopping:
		return e.Shopping
	case CategoryOther:
		return e.Other
	}
	return nil
}

// CategoryAmount returns the estimated amount for one category, 0 if absent.
func (e *BudgetEstimate) CategoryAmount(c ExpenseCategory) float64 {
	if est := e.Category(c); est != nil {
		return est.Amount
	}
	return 0
}

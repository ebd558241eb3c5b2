package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseCategoryValid(t *testing.T) {
	for _, cat := range ExpenseCategories {
		assert.True(t, cat.Valid(), "category %s should be valid", cat)
	}
	assert.False(t, ExpenseCategory("flights").Valid())
	assert.False(t, ExpenseCategory("").Valid())
	assert.False(t, ExpenseCategory("Food").Valid())
}

func TestExpenseCategoryIcon(t *testing.T) {
	for _, cat := range ExpenseCategories {
		assert.NotEmpty(t, cat.Icon())
	}
	// Unknown categories borrow the catch-all icon.
	assert.Equal(t, CategoryOther.Icon(), ExpenseCategory("flights").Icon())
}

func TestBudgetEstimateZeroValueMarshalsEmpty(t *testing.T) {
	data, err := json.Marshal(BudgetEstimate{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestBudgetEstimateCategoryAmount(t *testing.T) {
	est := &BudgetEstimate{
		Food: &CategoryEstimate{Amount: 350, Notes: "local restaurants"},
	}

	assert.Equal(t, 350.0, est.CategoryAmount(CategoryFood))
	assert.Zero(t, est.CategoryAmount(CategoryShopping))

	var nilEst *BudgetEstimate
	assert.Zero(t, nilEst.CategoryAmount(CategoryFood))
	assert.Nil(t, nilEst.Category(CategoryFood))
}

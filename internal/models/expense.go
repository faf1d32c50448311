package models

import "time"

type ExpenseCategory string

const (
	ExpenseIngredients ExpenseCategory = "ingredientes"
	ExpenseGas         ExpenseCategory = "gas"
	ExpenseTransport   ExpenseCategory = "transporte"
	ExpenseSalaries    ExpenseCategory = "salarios"
	ExpenseRent        ExpenseCategory = "renta"
	ExpenseServices    ExpenseCategory = "servicios"
	ExpenseOther       ExpenseCategory = "otros"
)

var ExpenseCategories = []ExpenseCategory{
	ExpenseIngredients,
	ExpenseGas,
	ExpenseTransport,
	ExpenseSalaries,
	ExpenseRent,
	ExpenseServices,
	ExpenseOther,
}

func ValidExpenseCategory(c ExpenseCategory) bool {
	for _, ec := range ExpenseCategories {
		if ec == c {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          string          `gorm:"primaryKey;size:30" json:"id"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	Description string          `gorm:"size:255" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Category    ExpenseCategory `gorm:"size:30;not null" json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"-"`
}

package models

import "time"

// Budget is one-to-one with a campaign. Remaining is derived on every
// persist: remaining = totalBudget - spent.
type Budget struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign"`
	TotalBudget float64   `json:"totalBudget"`
	DailyBudget float64   `json:"dailyBudget"`
	Spent       float64   `json:"spent"`
	Remaining   float64   `json:"remaining"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BudgetTransaction rows are append-only.
type BudgetTransaction struct {
	ID          string    `json:"id"`
	BudgetID    string    `json:"-"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

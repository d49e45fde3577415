package models

import (
	"time"
)

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
	TypeReward  TransactionType = "reward"
)

// IsCredit reports whether the type adds to a balance. Rewards are credits
// like income; they only differ in how the UI paints them.
func (t TransactionType) IsCredit() bool {
	return t == TypeIncome || t == TypeReward
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Transaction is the canonical, post-normalization shape. Amount is never
// negative; the sign lives in Type.
type Transaction struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	Date        time.Time         `json:"date"`
	Amount      float64           `json:"amount"`
	Type        TransactionType   `json:"type"`
	Status      TransactionStatus `json:"status"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	CardID      string            `json:"cardId,omitempty"`
	CardName    string            `json:"cardName,omitempty"`
}

package models

import "time"

// Task is a habit item on the weekly planner.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Incentive string `json:"incentive,omitempty"`
	Order     int    `json:"order"`
}

// CompletionHistory maps an ISO calendar day to the tasks completed that day.
type CompletionHistory map[string]map[string]bool

// Completed reports whether taskID was ticked on dateISO.
func (h CompletionHistory) Completed(dateISO, taskID string) bool {
	return h[dateISO][taskID]
}

// HistoryRecord is one row of the Finance API planner history.
type HistoryRecord struct {
	DateISO   string `json:"dateISO"`
	TaskID    string `json:"taskId"`
	Completed bool   `json:"completed"`
}

// Claim marks a day's incentives as redeemed against a card.
type Claim struct {
	CardID string    `json:"cardId"`
	Amount float64   `json:"amount"`
	At     time.Time `json:"at"`
}

// Claims is keyed by ISO calendar day; at most one claim per day.
type Claims map[string]Claim
